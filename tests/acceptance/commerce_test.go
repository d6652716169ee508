package acceptance

import (
	"net/http"

	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/internal/dto"
)

func (s *Suite) createProduct(access *http.Cookie, name string, price float64) *domain.Product {
	resp := s.postJSON("/products", map[string]any{
		"name":        name,
		"description": "A test product",
		"price":       price,
		"stock":       10,
	}, access)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var product domain.Product
	s.decode(resp, &product)
	s.Require().NotEmpty(product.ID)
	return &product
}

func (s *Suite) TestProducts_PublicListing() {
	access, _ := s.registerUser("merchant@example.com")
	s.createProduct(access, "Coffee Mug", 12.50)

	// Reading the catalog needs no session.
	resp := s.send(http.MethodGet, "/products")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var products []domain.Product
	s.decode(resp, &products)
	s.Require().Len(products, 1)
	s.Equal("Coffee Mug", products[0].Name)
}

func (s *Suite) TestProducts_CreateRequiresSession() {
	resp := s.postJSON("/products", map[string]any{
		"name":  "Coffee Mug",
		"price": 12.50,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCart_AddAndIncrement() {
	access, _ := s.registerUser("shopper@example.com")
	product := s.createProduct(access, "Coffee Mug", 12.50)

	first := s.postJSON("/cart/items", map[string]any{
		"product_id": product.ID,
		"quantity":   2,
	}, access)
	first.Body.Close()
	s.Require().Equal(http.StatusOK, first.StatusCode)

	// Re-adding the same product increments the line.
	second := s.postJSON("/cart/items", map[string]any{
		"product_id": product.ID,
		"quantity":   1,
	}, access)
	defer second.Body.Close()
	s.Require().Equal(http.StatusOK, second.StatusCode)

	listResp := s.send(http.MethodGet, "/cart", access)
	defer listResp.Body.Close()
	s.Equal(http.StatusOK, listResp.StatusCode)

	var items []domain.CartItem
	s.decode(listResp, &items)
	s.Require().Len(items, 1)
	s.Equal(3, items[0].Quantity)
}

func (s *Suite) TestCart_UnknownProduct() {
	access, _ := s.registerUser("shopper2@example.com")

	resp := s.postJSON("/cart/items", map[string]any{
		"product_id": "00000000-0000-0000-0000-000000000000",
		"quantity":   1,
	}, access)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestOrder_FromCart() {
	access, _ := s.registerUser("buyer@example.com")
	product := s.createProduct(access, "Coffee Mug", 12.50)

	addResp := s.postJSON("/cart/items", map[string]any{
		"product_id": product.ID,
		"quantity":   2,
	}, access)
	addResp.Body.Close()
	s.Require().Equal(http.StatusOK, addResp.StatusCode)

	orderResp := s.postJSON("/orders", map[string]any{
		"shipping_fee":   5.00,
		"tax":            2.00,
		"payment_method": "card",
	}, access)
	defer orderResp.Body.Close()
	s.Require().Equal(http.StatusCreated, orderResp.StatusCode)

	var created dto.CreateOrderResponse
	s.decode(orderResp, &created)
	s.Require().NotEmpty(created.OrderID)

	// The cart was consumed by the order.
	cartResp := s.send(http.MethodGet, "/cart", access)
	defer cartResp.Body.Close()
	var items []domain.CartItem
	s.decode(cartResp, &items)
	s.Empty(items)

	// Order lines carry the price at purchase time.
	getResp := s.send(http.MethodGet, "/orders/"+created.OrderID, access)
	defer getResp.Body.Close()
	s.Equal(http.StatusOK, getResp.StatusCode)

	var detail struct {
		Order domain.Order       `json:"order"`
		Items []domain.OrderItem `json:"items"`
	}
	s.decode(getResp, &detail)
	s.Equal(domain.OrderStatusCreated, detail.Order.Status)
	s.InDelta(2*12.50+5.00+2.00, detail.Order.Total, 0.001)
	s.Require().Len(detail.Items, 1)
	s.InDelta(12.50, detail.Items[0].UnitPrice, 0.001)
	s.Equal(2, detail.Items[0].Quantity)
}

func (s *Suite) TestOrder_EmptyCart() {
	access, _ := s.registerUser("emptycart@example.com")

	resp := s.postJSON("/orders", map[string]any{
		"payment_method": "card",
	}, access)
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestOrder_OwnershipIsEnforced() {
	buyerAccess, _ := s.registerUser("owner@example.com")
	product := s.createProduct(buyerAccess, "Coffee Mug", 12.50)

	addResp := s.postJSON("/cart/items", map[string]any{
		"product_id": product.ID,
		"quantity":   1,
	}, buyerAccess)
	addResp.Body.Close()

	orderResp := s.postJSON("/orders", map[string]any{
		"payment_method": "card",
	}, buyerAccess)
	defer orderResp.Body.Close()
	var created dto.CreateOrderResponse
	s.decode(orderResp, &created)

	otherAccess, _ := s.registerUser("stranger@example.com")
	resp := s.send(http.MethodGet, "/orders/"+created.OrderID, otherAccess)
	defer resp.Body.Close()

	// Someone else's order is indistinguishable from a missing one.
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestAddresses_CRUD() {
	access, _ := s.registerUser("addressed@example.com")

	createResp := s.postJSON("/addresses", map[string]any{
		"address_line1": "1 Main St",
		"city":          "Springfield",
		"state":         "IL",
		"postal_code":   "62701",
		"country":       "US",
	}, access)
	defer createResp.Body.Close()
	s.Require().Equal(http.StatusCreated, createResp.StatusCode)

	var address domain.Address
	s.decode(createResp, &address)
	s.Require().NotEmpty(address.ID)

	updateResp := s.sendJSON(http.MethodPut, "/addresses/"+address.ID, map[string]any{
		"address_line1": "2 Oak Ave",
		"city":          "Springfield",
		"state":         "IL",
		"postal_code":   "62702",
		"country":       "US",
	}, access)
	defer updateResp.Body.Close()
	s.Equal(http.StatusOK, updateResp.StatusCode)

	deleteResp := s.send(http.MethodDelete, "/addresses/"+address.ID, access)
	deleteResp.Body.Close()
	s.Equal(http.StatusOK, deleteResp.StatusCode)

	getResp := s.send(http.MethodGet, "/addresses/"+address.ID, access)
	defer getResp.Body.Close()
	s.Equal(http.StatusNotFound, getResp.StatusCode)
}
