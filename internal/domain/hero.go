package domain

// HeroPower is the minimum combat power needed to appear on regional hero boards.
type HeroPower struct {
	Name          string `json:"name"`
	Province      string `json:"province"`
	ProvincePower string `json:"provincePower"`
	City          string `json:"city"`
	CityPower     string `json:"cityPower"`
	Area          string `json:"area"`
	AreaPower     string `json:"areaPower"`
	UpdateTime    string `json:"updatetime"`
}
