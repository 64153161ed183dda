package googledomain

// Tipos de wire da API REST do Google Ads (googleAds:search). A API serializa
// inteiros de 64 bits como strings no JSON, por isso vários campos numéricos
// são string aqui e convertidos depois.

type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []SearchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

type SearchRow struct {
	Customer         *Customer         `json:"customer,omitempty"`
	Campaign         *Campaign         `json:"campaign,omitempty"`
	CampaignBudget   *CampaignBudget   `json:"campaignBudget,omitempty"`
	AdGroupCriterion *AdGroupCriterion `json:"adGroupCriterion,omitempty"`
	GeographicView   *GeographicView   `json:"geographicView,omitempty"`
	Metrics          *Metrics          `json:"metrics,omitempty"`
	Segments         *Segments         `json:"segments,omitempty"`
}

type Customer struct {
	ID              string `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
}

type Campaign struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
}

type CampaignBudget struct {
	AmountMicros string `json:"amountMicros"`
}

type AdGroupCriterion struct {
	CriterionID string       `json:"criterionId"`
	Keyword     *KeywordInfo `json:"keyword,omitempty"`
}

type KeywordInfo struct {
	Text      string `json:"text"`
	MatchType string `json:"matchType"`
}

type GeographicView struct {
	ResourceName       string `json:"resourceName"`
	CountryCriterionID string `json:"countryCriterionId"`
	LocationType       string `json:"locationType"`
}

type Metrics struct {
	Impressions      string  `json:"impressions"`
	Clicks           string  `json:"clicks"`
	CostMicros       string  `json:"costMicros"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
}

type Segments struct {
	Date                 string `json:"date"`
	GeoTargetCity        string `json:"geoTargetCity,omitempty"`
	GeoTargetCountryCode string `json:"geoTargetCountry,omitempty"`
}
