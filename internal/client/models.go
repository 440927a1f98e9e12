// ABOUTME: Data types for the core API and their normalization
// ABOUTME: Coerces evolving backend field names into one stable shape

package client

import "time"

// ShopListOwner identifies the user who created a list.
type ShopListOwner struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// ShopListMember is a user with access to a shared list.
type ShopListMember struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// Flyer is a promotional listing returned by the search backend and
// attached to matched items.
type Flyer struct {
	Store          string   `json:"store"`
	Brand          string   `json:"brand"`
	ProductName    string   `json:"product_name"`
	Description    string   `json:"description"`
	DisclaimerText string   `json:"disclaimer_text"`
	ImageURL       string   `json:"image_url"`
	Images         []string `json:"images"`
	OriginalPrice  float64  `json:"original_price"`
	PrePriceText   string   `json:"pre_price_text"`
	PriceText      string   `json:"price_text"`
	PostPriceText  string   `json:"post_price_text"`
	StartDate      int64    `json:"start_date"`
	EndDate        int64    `json:"end_date"`
}

// ValidityWindow renders the flyer's start and end dates, which arrive
// as epoch milliseconds, as a readable date range. Empty when the
// backend sent no dates.
func (f Flyer) ValidityWindow() string {
	if f.StartDate == 0 && f.EndDate == 0 {
		return ""
	}
	return flyerDate(f.StartDate) + " - " + flyerDate(f.EndDate)
}

func flyerDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("Jan 2, 2006")
}

// ShopListItem is one entry on a shop list.
type ShopListItem struct {
	ID              int64    `json:"id"`
	ItemName        string   `json:"item_name"`
	BrandName       string   `json:"brand_name"`
	ExtraInfo       string   `json:"extra_info"`
	IsBought        bool     `json:"is_bought"`
	AvailableStores []string `json:"available_stores"`
	FlyerDetails    []Flyer  `json:"flyer_details,omitempty"`
}

// ShopList is a list with its owner, members, and items.
type ShopList struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Owner   ShopListOwner    `json:"owner"`
	Members []ShopListMember `json:"members"`
	Items   []ShopListItem   `json:"items"`
}

// ItemInput is the body for adding an item.
type ItemInput struct {
	ItemName  string `json:"item_name"`
	BrandName string `json:"brand_name,omitempty"`
	ExtraInfo string `json:"extra_info,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ItemPatch carries partial item updates; nil fields are left untouched.
type ItemPatch struct {
	ItemName  *string `json:"item_name,omitempty"`
	BrandName *string `json:"brand_name,omitempty"`
	ExtraInfo *string `json:"extra_info,omitempty"`
	IsBought  *bool   `json:"is_bought,omitempty"`
}

// Raw wire shapes. The backend's field names evolved across versions
// (items arrive as "name" or "item_name", flyers under "flyer"), so
// responses are re-shaped explicitly instead of trusted as-is.

type rawShopList struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Owner   ShopListOwner    `json:"owner"`
	Members []ShopListMember `json:"members"`
	Items   []rawItem        `json:"items"`
}

type rawItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ItemName  string  `json:"item_name"`
	BrandName string  `json:"brand_name"`
	ExtraInfo string  `json:"extra_info"`
	IsBought  bool    `json:"is_bought"`
	Flyer     []Flyer `json:"flyer"`
}

func (r rawShopList) normalize() ShopList {
	list := ShopList{
		ID:      r.ID,
		Name:    r.Name,
		Owner:   r.Owner,
		Members: r.Members,
		Items:   make([]ShopListItem, 0, len(r.Items)),
	}
	if list.Members == nil {
		list.Members = []ShopListMember{}
	}
	for _, item := range r.Items {
		list.Items = append(list.Items, item.normalize())
	}
	return list
}

func (r rawItem) normalize() ShopListItem {
	name := r.Name
	if name == "" {
		name = r.ItemName
	}
	return ShopListItem{
		ID:              r.ID,
		ItemName:        name,
		BrandName:       r.BrandName,
		ExtraInfo:       r.ExtraInfo,
		IsBought:        r.IsBought,
		AvailableStores: storeNames(r.Flyer),
		FlyerDetails:    r.Flyer,
	}
}

// storeNames collects the distinct store names from flyer matches,
// preserving first-seen order.
func storeNames(flyers []Flyer) []string {
	seen := make(map[string]bool, len(flyers))
	stores := make([]string, 0, len(flyers))
	for _, f := range flyers {
		if f.Store == "" || seen[f.Store] {
			continue
		}
		seen[f.Store] = true
		stores = append(stores, f.Store)
	}
	return stores
}
