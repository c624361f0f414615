package domain

// Item is a single to-do entry.
type Item struct {
	ID          int64  `json:"id" form:"id"`
	Description string `json:"description" form:"description"`
	Done        bool   `json:"done" form:"done"`
}

// Category is a label that items can be tagged with.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryItem links an Item to a Category.
type CategoryItem struct {
	ID         int64 `json:"id"`
	CategoryID int64 `json:"categoryId"`
	ItemID     int64 `json:"itemId"`
}

// CategoryLink is a CategoryItem with its Category resolved.
type CategoryLink struct {
	JoinID   int64    `json:"joinId"`
	Category Category `json:"category"`
}

// ItemDetails is an Item together with every category it is tagged with.
type ItemDetails struct {
	Item
	Categories []CategoryLink `json:"categories"`
}

// CategoryOption is one entry of a category dropdown.
type CategoryOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemForm is what a create/edit form needs to render.
type ItemForm struct {
	Item       Item             `json:"item"`
	Categories []CategoryOption `json:"categories"`
}
