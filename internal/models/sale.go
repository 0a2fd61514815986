package models

import "time"

// Sale is one retail transaction. Every column but the id is nullable: the
// import coerces missing or malformed source values to NULL.
type Sale struct {
	ID            uint       `gorm:"primaryKey;column:id" json:"id"`
	TransactionID *string    `gorm:"column:transaction_id;index" json:"transaction_id"`
	Date          *time.Time `gorm:"column:date;type:date;index" json:"date"`

	// Customer
	CustomerID     *string `gorm:"column:customer_id;index" json:"customer_id"`
	CustomerName   *string `gorm:"column:customer_name;index" json:"customer_name"`
	PhoneNumber    *string `gorm:"column:phone_number" json:"phone_number"`
	Gender         *string `gorm:"column:gender" json:"gender"`
	Age            *int    `gorm:"column:age" json:"age"`
	CustomerRegion *string `gorm:"column:customer_region" json:"customer_region"`
	CustomerType   *string `gorm:"column:customer_type" json:"customer_type"`

	// Product
	ProductID       *string `gorm:"column:product_id;index" json:"product_id"`
	ProductName     *string `gorm:"column:product_name" json:"product_name"`
	Brand           *string `gorm:"column:brand" json:"brand"`
	ProductCategory *string `gorm:"column:product_category" json:"product_category"`
	Tags            *string `gorm:"column:tags;type:text" json:"tags"`

	// Amounts
	Quantity           *int     `gorm:"column:quantity" json:"quantity"`
	PricePerUnit       *float64 `gorm:"column:price_per_unit" json:"price_per_unit"`
	DiscountPercentage *float64 `gorm:"column:discount_percentage" json:"discount_percentage"`
	TotalAmount        *float64 `gorm:"column:total_amount" json:"total_amount"`
	FinalAmount        *float64 `gorm:"column:final_amount" json:"final_amount"`

	// Operations
	PaymentMethod *string `gorm:"column:payment_method" json:"payment_method"`
	OrderStatus   *string `gorm:"column:order_status" json:"order_status"`
	DeliveryType  *string `gorm:"column:delivery_type" json:"delivery_type"`
	StoreID       *string `gorm:"column:store_id" json:"store_id"`
	StoreLocation *string `gorm:"column:store_location" json:"store_location"`
	SalespersonID *string `gorm:"column:salesperson_id" json:"salesperson_id"`
	EmployeeName  *string `gorm:"column:employee_name" json:"employee_name"`
}

func (Sale) TableName() string { return "sales" }
