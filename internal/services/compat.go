package services

import (
	"fmt"

	"github.com/Georges999/Car-Parts-Marketplace/internal/models"
)

// FitStatus 配件对某辆车的适配结论
type FitStatus string

const (
	FitCompatible        FitStatus = "compatible"
	FitIncompatible      FitStatus = "incompatible"
	FitUniversal         FitStatus = "universal"
	FitNeedsVerification FitStatus = "needs-verification"
)

// VehicleDescriptor 用于适配判断的车辆描述
type VehicleDescriptor struct {
	Make   string `json:"make"`
	Model  string `json:"model"`
	Year   int    `json:"year"`
	Trim   string `json:"trim,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// FitResult 适配结论加展示文案
type FitResult struct {
	Status  FitStatus `json:"status"`
	Message string    `json:"message"`
}

// DescriptorFromVehicle 从车库车辆构造描述
func DescriptorFromVehicle(v *models.Vehicle) VehicleDescriptor {
	return VehicleDescriptor{
		Make:   v.Make,
		Model:  v.Model,
		Year:   v.Year,
		Trim:   v.Trim,
		Engine: v.Engine,
	}
}

// CheckFit 判断配件适配规则与车辆的匹配结果，纯函数，永不失败。
//
// 规则按列表顺序扫描，首条完全命中的规则即为结论：
// make/model 按存储值精确比较，年份须落在 [yearStart, yearEnd]，
// 规则声明了 trim/engine 时也必须一致。
// 没有任何规则时视为通用件；同厂牌车型但年份不覆盖时需要人工确认。
func CheckFit(rules []models.CompatibilityRule, v VehicleDescriptor) FitResult {
	// 描述不完整时无法下结论
	if v.Make == "" || v.Model == "" || v.Year <= 0 {
		return FitResult{
			Status:  FitNeedsVerification,
			Message: "Vehicle details are incomplete - select a vehicle to check fitment",
		}
	}

	if len(rules) == 0 {
		return FitResult{
			Status:  FitUniversal,
			Message: "Universal fit - compatible with most vehicles",
		}
	}

	sawMakeModel := false
	for _, r := range rules {
		if r.Make != v.Make || r.Model != v.Model {
			continue
		}
		sawMakeModel = true

		if v.Year < r.YearStart || v.Year > r.YearEnd {
			continue
		}
		if r.Trim != "" && r.Trim != v.Trim {
			continue
		}
		if r.Engine != "" && r.Engine != v.Engine {
			continue
		}

		// 首条命中的规则即为结论
		return FitResult{
			Status:  FitCompatible,
			Message: fmt.Sprintf("Fits %s %s (%d-%d)", r.Make, r.Model, r.YearStart, r.YearEnd),
		}
	}

	if sawMakeModel {
		// 厂牌车型对得上但条件没全中：可能是新年款或数据缺口
		return FitResult{
			Status:  FitNeedsVerification,
			Message: "May fit your vehicle - needs verification",
		}
	}

	return FitResult{
		Status:  FitIncompatible,
		Message: "Does not fit your vehicle",
	}
}
