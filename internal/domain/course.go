package domain

type Course struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Provider  string `json:"provider"`
	URL       string `json:"url"`
	CostCents int64  `json:"cost_cents"`
	Approved  bool   `json:"approved"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
