package ingest

import (
	"strings"

	"github.com/stock-ahora/api-sales/internal/models"
)

type column int

const (
	colTransactionID column = iota
	colDate
	colCustomerID
	colCustomerName
	colPhoneNumber
	colGender
	colAge
	colCustomerRegion
	colCustomerType
	colProductID
	colProductName
	colBrand
	colProductCategory
	colTags
	colQuantity
	colPricePerUnit
	colDiscountPercentage
	colTotalAmount
	colFinalAmount
	colPaymentMethod
	colOrderStatus
	colDeliveryType
	colStoreID
	colStoreLocation
	colSalespersonID
	colEmployeeName
	numColumns
)

// headers are the column titles of the sales dataset export.
var headers = map[string]column{
	"transaction id":      colTransactionID,
	"date":                colDate,
	"customer id":         colCustomerID,
	"customer name":       colCustomerName,
	"phone number":        colPhoneNumber,
	"gender":              colGender,
	"age":                 colAge,
	"customer region":     colCustomerRegion,
	"customer type":       colCustomerType,
	"product id":          colProductID,
	"product name":        colProductName,
	"brand":               colBrand,
	"product category":    colProductCategory,
	"tags":                colTags,
	"quantity":            colQuantity,
	"price per unit":      colPricePerUnit,
	"discount percentage": colDiscountPercentage,
	"total amount":        colTotalAmount,
	"final amount":        colFinalAmount,
	"payment method":      colPaymentMethod,
	"order status":        colOrderStatus,
	"delivery type":       colDeliveryType,
	"store id":            colStoreID,
	"store location":      colStoreLocation,
	"salesperson id":      colSalespersonID,
	"employee name":       colEmployeeName,
}

// rowMapper turns CSV records into Sale rows using the positions found in
// the header line.
type rowMapper struct {
	index [numColumns]int
}

func newRowMapper(header []string) (*rowMapper, error) {
	m := &rowMapper{}
	for i := range m.index {
		m.index[i] = -1
	}

	known := 0
	for pos, title := range header {
		col, ok := headers[normalizeHeader(title)]
		if !ok || m.index[col] >= 0 {
			continue
		}
		m.index[col] = pos
		known++
	}
	if known == 0 {
		return nil, ErrUnknownHeader
	}
	return m, nil
}

// normalizeHeader folds case, underscores and a UTF-8 BOM so both
// "Customer Name" and "customer_name" resolve.
func normalizeHeader(title string) string {
	title = strings.TrimPrefix(title, "\ufeff")
	title = strings.ReplaceAll(title, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

func (m *rowMapper) cell(record []string, col column) string {
	pos := m.index[col]
	if pos < 0 || pos >= len(record) {
		return ""
	}
	return record[pos]
}

// Sale maps one record. Malformed numeric and date cells become nil; the
// number of such cells is returned.
func (m *rowMapper) Sale(record []string) (models.Sale, int) {
	coerced := 0
	intField := func(col column) *int {
		v, err := ParseInt(m.cell(record, col))
		if err != nil {
			coerced++
		}
		return v
	}
	floatField := func(col column) *float64 {
		v, err := ParseFloat(m.cell(record, col))
		if err != nil {
			coerced++
		}
		return v
	}
	str := func(col column) *string {
		return ParseString(m.cell(record, col))
	}

	date, err := ParseDate(m.cell(record, colDate))
	if err != nil {
		coerced++
	}

	sale := models.Sale{
		TransactionID:      str(colTransactionID),
		Date:               date,
		CustomerID:         str(colCustomerID),
		CustomerName:       str(colCustomerName),
		PhoneNumber:        str(colPhoneNumber),
		Gender:             str(colGender),
		Age:                intField(colAge),
		CustomerRegion:     str(colCustomerRegion),
		CustomerType:       str(colCustomerType),
		ProductID:          str(colProductID),
		ProductName:        str(colProductName),
		Brand:              str(colBrand),
		ProductCategory:    str(colProductCategory),
		Tags:               str(colTags),
		Quantity:           intField(colQuantity),
		PricePerUnit:       floatField(colPricePerUnit),
		DiscountPercentage: floatField(colDiscountPercentage),
		TotalAmount:        floatField(colTotalAmount),
		FinalAmount:        floatField(colFinalAmount),
		PaymentMethod:      str(colPaymentMethod),
		OrderStatus:        str(colOrderStatus),
		DeliveryType:       str(colDeliveryType),
		StoreID:            str(colStoreID),
		StoreLocation:      str(colStoreLocation),
		SalespersonID:      str(colSalespersonID),
		EmployeeName:       str(colEmployeeName),
	}
	return sale, coerced
}
