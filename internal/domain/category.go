package domain

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Image         string        `json:"image,omitempty"`
	SubCategories []SubCategory `json:"subCategories,omitempty"`
}

type SubCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
