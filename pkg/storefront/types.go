package storefront

// Wire types for the storefront API. These mirror the server's JSON shapes
// so the package stays importable on its own.

type Product struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	OldPrice    float64 `json:"old_price,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type MenuCategory struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Emoji    string    `json:"emoji,omitempty"`
	Products []Product `json:"products"`
}

type MenuResponse struct {
	Categories []MenuCategory `json:"categories"`
}

type Region struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	DeliveryPrice float64 `json:"delivery_price"`
}

type RegionsResponse struct {
	Regions []Region `json:"regions"`
}

type User struct {
	ID         int64  `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type Address struct {
	ID        int64  `json:"id"`
	RegionID  int64  `json:"region_id"`
	Street    string `json:"street"`
	House     string `json:"house"`
	Entrance  string `json:"entrance,omitempty"`
	Flat      string `json:"flat,omitempty"`
	Comment   string `json:"comment,omitempty"`
	IsDefault bool   `json:"is_default"`
}

type AddressInput struct {
	RegionID  int64  `json:"region_id"`
	Street    string `json:"street"`
	House     string `json:"house"`
	Entrance  string `json:"entrance,omitempty"`
	Flat      string `json:"flat,omitempty"`
	Comment   string `json:"comment,omitempty"`
	IsDefault bool   `json:"is_default"`
}

type AddressesResponse struct {
	Addresses []Address `json:"addresses"`
}

type Profile struct {
	User      User      `json:"user"`
	Addresses []Address `json:"addresses"`
}

type AuthResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Qty       int32 `json:"qty"`
}

type CreateOrderPayload struct {
	ClientRequestID string           `json:"client_request_id"`
	Type            string           `json:"type"`
	PaymentMethod   string           `json:"payment_method"`
	AddressID       int64            `json:"address_id,omitempty"`
	RegionID        int64            `json:"region_id"`
	Comment         string           `json:"comment,omitempty"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	Items           []OrderItemInput `json:"items"`
}

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         int32   `json:"qty"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type Order struct {
	ID            int64       `json:"id"`
	Status        string      `json:"status"`
	Type          string      `json:"type"`
	PaymentMethod string      `json:"payment_method"`
	DeliveryPrice float64     `json:"delivery_price"`
	ItemsTotal    float64     `json:"items_total"`
	TotalPrice    float64     `json:"total_price"`
	Comment       string      `json:"comment,omitempty"`
	Items         []OrderItem `json:"items"`
	CreatedAt     string      `json:"created_at"`
}
