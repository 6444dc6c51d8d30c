package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog/internal/validation"
)

func TestValidID(t *testing.T) {
	assert.True(t, validation.ValidID("33333333-3333-3333-3333-333333333333"))
	assert.True(t, validation.ValidID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.False(t, validation.ValidID("not-a-uuid"))
	assert.False(t, validation.ValidID(""))
	assert.False(t, validation.ValidID("33333333-3333-3333-3333-33333333333"))   // 35 chars
	assert.False(t, validation.ValidID("33333333-3333-3333-3333-3333333333331")) // 37 chars
	assert.False(t, validation.ValidID("g3333333-3333-3333-3333-333333333333"))  // non-hex
}

func TestValidateUser(t *testing.T) {
	v := validation.New()

	// An empty payload enumerates every missing field.
	err := v.ValidateUser(&validation.UserPayload{})
	assert.NotNil(t, err)
	assert.Equal(t, 400, err.Status)
	assert.Equal(t, "Invalid data", err.Message)
	details := err.Details.(validation.FieldErrors)
	assert.Contains(t, details["name"], "Name is required")
	assert.Contains(t, details["email"], "Email is required")
	assert.Contains(t, details["password"], "Password is required")
	assert.Contains(t, details["role"], "Role is required")

	// Present but invalid values get constraint messages.
	name, email, password, role := "Te", "not-an-email", "short", "buyer"
	err = v.ValidateUser(&validation.UserPayload{
		Name:     &name,
		Email:    &email,
		Password: &password,
		Role:     &role,
	})
	assert.NotNil(t, err)
	details = err.Details.(validation.FieldErrors)
	assert.Contains(t, details["name"], "Name must have at least 3 characters")
	assert.Contains(t, details["email"], "Invalid email format")
	assert.Contains(t, details["password"], "Password must have at least 8 characters")
	assert.Contains(t, details["role"], "Role must be 'seller' or 'admin'")

	// A valid payload passes.
	name, email, password, role = "Test User", "test@example.com", "password123", "seller"
	err = v.ValidateUser(&validation.UserPayload{
		Name:     &name,
		Email:    &email,
		Password: &password,
		Role:     &role,
	})
	assert.Nil(t, err)
}

func TestValidateProduct(t *testing.T) {
	v := validation.New()

	err := v.ValidateProduct(&validation.ProductPayload{})
	assert.NotNil(t, err)
	details := err.Details.(validation.FieldErrors)
	assert.Contains(t, details["name"], "Name is required")
	assert.Contains(t, details["price"], "Price is required")
	assert.Contains(t, details["stock"], "Stock is required")

	name := "Laptop"
	price := validation.Number(0)
	stock := validation.Count(-1)
	badURL := "not a url"
	err = v.ValidateProduct(&validation.ProductPayload{
		Name:     &name,
		Price:    &price,
		Stock:    &stock,
		ImageURL: &badURL,
	})
	assert.NotNil(t, err)
	details = err.Details.(validation.FieldErrors)
	assert.Contains(t, details["price"], "Price must be greater than zero")
	assert.Contains(t, details["stock"], "Stock cannot be negative")
	assert.Contains(t, details["imageUrl"], "Invalid image URL")

	// Explicit zero stock is valid; it is only negatives that fail.
	price = validation.Number(19.99)
	stock = validation.Count(0)
	err = v.ValidateProduct(&validation.ProductPayload{
		Name:  &name,
		Price: &price,
		Stock: &stock,
	})
	assert.Nil(t, err)
}

func TestValidateProducts_PerRowKeys(t *testing.T) {
	v := validation.New()

	name := "Laptop"
	goodPrice := validation.Number(10)
	badPrice := validation.Number(-1)
	stock := validation.Count(1)

	err := v.ValidateProducts([]validation.ProductPayload{
		{Name: &name, Price: &goodPrice, Stock: &stock},
		{Name: &name, Price: &badPrice, Stock: &stock},
		{Price: &goodPrice, Stock: &stock},
	})
	assert.NotNil(t, err)
	details := err.Details.(validation.FieldErrors)
	assert.NotContains(t, details, "products[0].price")
	assert.Contains(t, details["products[1].price"], "Price must be greater than zero")
	assert.Contains(t, details["products[2].name"], "Name is required")
}

func TestValidateProductPatch(t *testing.T) {
	v := validation.New()

	// An empty patch is valid; every field is optional.
	assert.Nil(t, v.ValidateProductPatch(&validation.ProductPatchPayload{}))

	badPrice := validation.Number(-5)
	err := v.ValidateProductPatch(&validation.ProductPatchPayload{Price: &badPrice})
	assert.NotNil(t, err)
	details := err.Details.(validation.FieldErrors)
	assert.Contains(t, details["price"], "Price must be greater than zero")
}

func TestNumberCoercion(t *testing.T) {
	var payload validation.ProductPayload

	// Quoted numeric strings coerce to numbers, matching what spreadsheet
	// exports produce.
	body := `{"name":"Laptop","price":"19.99","stock":"5"}`
	assert.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, validation.Number(19.99), *payload.Price)
	assert.Equal(t, validation.Count(5), *payload.Stock)

	// Plain numbers still work.
	body = `{"name":"Laptop","price":19.99,"stock":5}`
	assert.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, validation.Number(19.99), *payload.Price)

	// A fractional stock is not a count.
	body = `{"name":"Laptop","price":1,"stock":3.5}`
	assert.Error(t, json.Unmarshal([]byte(body), &payload))

	// Garbage strings fail instead of silently becoming zero.
	body = `{"name":"Laptop","price":"abc","stock":1}`
	assert.Error(t, json.Unmarshal([]byte(body), &payload))
}

func TestFlexTimeCoercion(t *testing.T) {
	var payload validation.ProductPayload

	body := `{"name":"Laptop","price":1,"stock":1,"variantCreated":"2026-08-30T10:00:00Z","variantUpdated":"2026-08-30"}`
	assert.NoError(t, json.Unmarshal([]byte(body), &payload))

	product := payload.ToModel()
	assert.NotNil(t, product.VariantCreated)
	assert.Equal(t, 10, product.VariantCreated.Hour())
	assert.NotNil(t, product.VariantUpdated)
	assert.Equal(t, "2026-08-30", product.VariantUpdated.Format("2006-01-02"))
	assert.Nil(t, product.InventoryLevelCreated)
}

func TestProductPayload_ToModel_Defaults(t *testing.T) {
	name := "Laptop"
	price := validation.Number(19.99)
	stock := validation.Count(5)
	payload := validation.ProductPayload{
		Name:  &name,
		Price: &price,
		Stock: &stock,
		EAN:   []string{"4006381333931"},
	}

	product := payload.ToModel()
	assert.Equal(t, "Laptop", product.Name)
	assert.Equal(t, 19.99, product.Price)
	assert.Equal(t, 5, product.Stock)
	assert.Equal(t, []string{"4006381333931"}, []string(product.EAN))

	// Absent array fields normalize to empty lists, not nil.
	assert.NotNil(t, product.ProductType)
	assert.Empty(t, product.ProductType)
	assert.NotNil(t, product.Department)
	assert.False(t, product.MSC)
}
