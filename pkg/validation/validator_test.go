package validation

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,pwd"`
	Price    float64 `json:"price" binding:"money"`
}

func TestToDetails_ValidationErrors(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signup{
		Email:    "not-an-email",
		Password: strings.Repeat("x", 73),
		Price:    -1,
	})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be between 1 and 72 bytes long", details["password"])
	assert.Equal(t, "must not be negative", details["price"])
}

func TestToDetails_PayloadErrors(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "body is empty"}, ToDetails(io.EOF))

	var v signup
	err := json.Unmarshal([]byte(`{"name":`), &v)
	require.Error(t, err)
	assert.Equal(t, "invalid json", ToDetails(&json.SyntaxError{})["payload"])

	err = json.Unmarshal([]byte(`{"price":"cheap"}`), &v)
	require.Error(t, err)
	assert.Equal(t, "must be a float64", ToDetails(err)["price"])
}

func TestPasswordRule_CountsBytes(t *testing.T) {
	Init()

	// 72 runes, 144 bytes
	err := binding.Validator.ValidateStruct(&signup{Name: "a", Email: "a@x.com", Password: strings.Repeat("é", 72)})
	require.Error(t, err)
	assert.Equal(t, "must be between 1 and 72 bytes long", ToDetails(err)["password"])

	err = binding.Validator.ValidateStruct(&signup{Name: "a", Email: "a@x.com", Password: strings.Repeat("é", 36)})
	assert.NoError(t, err)
}
