package dto

import (
	"github.com/stock-ahora/api-sales/internal/models"
)

const DateLayout = "2006-01-02"

// SaleDto is the flat wire row: every Sale attribute, dates as YYYY-MM-DD,
// nulls as JSON null.
type SaleDto struct {
	ID            uint    `json:"id"`
	TransactionID *string `json:"transaction_id"`
	Date          *string `json:"date"`

	CustomerID     *string `json:"customer_id"`
	CustomerName   *string `json:"customer_name"`
	PhoneNumber    *string `json:"phone_number"`
	Gender         *string `json:"gender"`
	Age            *int    `json:"age"`
	CustomerRegion *string `json:"customer_region"`
	CustomerType   *string `json:"customer_type"`

	ProductID       *string `json:"product_id"`
	ProductName     *string `json:"product_name"`
	Brand           *string `json:"brand"`
	ProductCategory *string `json:"product_category"`
	Tags            *string `json:"tags"`

	Quantity           *int     `json:"quantity"`
	PricePerUnit       *float64 `json:"price_per_unit"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	TotalAmount        *float64 `json:"total_amount"`
	FinalAmount        *float64 `json:"final_amount"`

	PaymentMethod *string `json:"payment_method"`
	OrderStatus   *string `json:"order_status"`
	DeliveryType  *string `json:"delivery_type"`
	StoreID       *string `json:"store_id"`
	StoreLocation *string `json:"store_location"`
	SalespersonID *string `json:"salesperson_id"`
	EmployeeName  *string `json:"employee_name"`
}

func NewSaleDto(s models.Sale) SaleDto {
	var date *string
	if s.Date != nil {
		d := s.Date.Format(DateLayout)
		date = &d
	}

	return SaleDto{
		ID:                 s.ID,
		TransactionID:      s.TransactionID,
		Date:               date,
		CustomerID:         s.CustomerID,
		CustomerName:       s.CustomerName,
		PhoneNumber:        s.PhoneNumber,
		Gender:             s.Gender,
		Age:                s.Age,
		CustomerRegion:     s.CustomerRegion,
		CustomerType:       s.CustomerType,
		ProductID:          s.ProductID,
		ProductName:        s.ProductName,
		Brand:              s.Brand,
		ProductCategory:    s.ProductCategory,
		Tags:               s.Tags,
		Quantity:           s.Quantity,
		PricePerUnit:       s.PricePerUnit,
		DiscountPercentage: s.DiscountPercentage,
		TotalAmount:        s.TotalAmount,
		FinalAmount:        s.FinalAmount,
		PaymentMethod:      s.PaymentMethod,
		OrderStatus:        s.OrderStatus,
		DeliveryType:       s.DeliveryType,
		StoreID:            s.StoreID,
		StoreLocation:      s.StoreLocation,
		SalespersonID:      s.SalespersonID,
		EmployeeName:       s.EmployeeName,
	}
}

func NewSaleDtos(sales []models.Sale) []SaleDto {
	items := make([]SaleDto, 0, len(sales))
	for _, s := range sales {
		items = append(items, NewSaleDto(s))
	}
	return items
}
