package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LevelCount is the depth of the upline commission cascade.
const LevelCount = 10

// Deductions are the percentages carved out of every work payout.
type Deductions struct {
	WorkDeductionPercent   decimal.Decimal `json:"work_deduction_percent"`
	DownlineSupportPercent decimal.Decimal `json:"downline_support_percent"`
	MagicFundPercent       decimal.Decimal `json:"magic_fund_percent"`
}

// LevelRequirement gates payouts at one cascade level.
type LevelRequirement struct {
	Level           int  `json:"level"`
	RequiredDirects int  `json:"required_directs"`
	IsOpen          bool `json:"is_open"`
}

// Maintenance describes the maintenance window banner.
type Maintenance struct {
	IsActive bool       `json:"is_active"`
	Message  string     `json:"message,omitempty"`
	LiveTime *time.Time `json:"live_time,omitempty"`
}

// IncomeEligibility is the optional minimum-work rule for commission income.
type IncomeEligibility struct {
	IsActive             bool            `json:"is_active"`
	MinMonthlyWorkAmount decimal.Decimal `json:"min_monthly_work_amount"`
}

// CompanyDetails are the payment destinations shown for fund adds.
type CompanyDetails struct {
	UpiId         string `json:"upi_id"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	AccountName   string `json:"account_name"`
}

// Settings is the configuration singleton read by the distributor.
type Settings struct {
	IsInvestmentEnabled    bool                         `json:"is_investment_enabled"`
	InvestmentOrderPercent decimal.Decimal              `json:"investment_order_percent"`
	IsWithdrawalEnabled    bool                         `json:"is_withdrawal_enabled"`
	IsGalleryEnabled       bool                         `json:"is_gallery_enabled"`
	Maintenance            Maintenance                  `json:"maintenance"`
	Deductions             Deductions                   `json:"deductions"`
	IncomeEligibility      IncomeEligibility            `json:"income_eligibility"`
	LevelRequirements      [LevelCount]LevelRequirement `json:"level_requirements"`
	LevelDistributionRates [LevelCount]decimal.Decimal  `json:"level_distribution_rates"`
	WithdrawalMinimum      decimal.Decimal              `json:"withdrawal_minimum"`
	CompanyDetails         CompanyDetails               `json:"company_details"`
	UpdatedAt              time.Time                    `json:"updated_at"`
}

// DefaultSettings returns the settings used until an administrator saves any.
func DefaultSettings() Settings {
	s := Settings{
		IsWithdrawalEnabled: true,
		IsGalleryEnabled:    true,
		Deductions: Deductions{
			WorkDeductionPercent:   decimal.NewFromInt(15),
			DownlineSupportPercent: decimal.NewFromInt(10),
			MagicFundPercent:       decimal.NewFromInt(5),
		},
		WithdrawalMinimum: decimal.NewFromInt(500),
	}
	for i, r := range []int64{25, 15, 10, 10, 10, 10, 5, 5, 5, 5} {
		s.LevelDistributionRates[i] = decimal.NewFromInt(r)
		s.LevelRequirements[i] = LevelRequirement{Level: i + 1, IsOpen: true}
	}
	return s
}
