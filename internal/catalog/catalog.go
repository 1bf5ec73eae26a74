// Package catalog holds the storefront price list and the per-unit rate
// table every purchase is charged by.
package catalog

import (
	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/shopspring/decimal"
)

type Tier struct {
	ID      string          `json:"id"`
	Count   int64           `json:"count"`
	Price   decimal.Decimal `json:"price"`
	Popular bool            `json:"popular"`
}

var rates = map[models.OrderType]decimal.Decimal{
	models.OrderFollowers: decimal.RequireFromString("0.75"),
	models.OrderViews:     decimal.RequireFromString("0.10"),
	models.OrderLikes:     decimal.RequireFromString("0.40"),
}

var tiers = map[models.OrderType][]Tier{
	models.OrderFollowers: {
		{ID: "f1", Count: 100, Price: decimal.NewFromInt(79)},
		{ID: "f2", Count: 500, Price: decimal.NewFromInt(299), Popular: true},
		{ID: "f3", Count: 1000, Price: decimal.NewFromInt(549)},
		{ID: "f4", Count: 5000, Price: decimal.NewFromInt(2499)},
	},
	models.OrderViews: {
		{ID: "v1", Count: 500, Price: decimal.NewFromInt(49)},
		{ID: "v2", Count: 1000, Price: decimal.NewFromInt(89)},
		{ID: "v3", Count: 5000, Price: decimal.NewFromInt(399), Popular: true},
		{ID: "v4", Count: 10000, Price: decimal.NewFromInt(699)},
	},
	models.OrderLikes: {
		{ID: "l1", Count: 100, Price: decimal.NewFromInt(49)},
		{ID: "l2", Count: 500, Price: decimal.NewFromInt(199), Popular: true},
		{ID: "l3", Count: 1000, Price: decimal.NewFromInt(349)},
		{ID: "l4", Count: 2500, Price: decimal.NewFromInt(799)},
	},
}

// RechargePresets are the deposit amounts offered by the wallet screen.
var RechargePresets = []int64{10, 25, 50, 100, 250, 500}

// Services lists the purchasable types in display order.
var Services = []models.OrderType{models.OrderFollowers, models.OrderViews, models.OrderLikes}

// Rate returns the per-unit price of a service.
func Rate(service models.OrderType) (decimal.Decimal, error) {
	r, ok := rates[service]
	if !ok {
		return decimal.Zero, errs.ErrUnknownService
	}
	return r, nil
}

// Tiers returns a copy of the package list for a service.
func Tiers(service models.OrderType) []Tier {
	out := make([]Tier, len(tiers[service]))
	copy(out, tiers[service])
	return out
}

// Popular returns the highlighted tier of a service.
func Popular(service models.OrderType) (Tier, bool) {
	for _, t := range tiers[service] {
		if t.Popular {
			return t, true
		}
	}
	return Tier{}, false
}

type Listing struct {
	Services []ServiceListing `json:"services"`
	Presets  []int64          `json:"recharge_presets"`
}

type ServiceListing struct {
	Type  models.OrderType `json:"type"`
	Rate  decimal.Decimal  `json:"rate"`
	Tiers []Tier           `json:"tiers"`
}

// List renders the whole catalog for the storefront.
func List() Listing {
	out := Listing{Presets: append([]int64(nil), RechargePresets...)}
	for _, s := range Services {
		out.Services = append(out.Services, ServiceListing{Type: s, Rate: rates[s], Tiers: Tiers(s)})
	}
	return out
}
