package models

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries one message per failing field, in field order.
type ValidationError struct {
	Fields   []string
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Has reports whether the given struct field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

var messages = map[string]string{
	"ProductInfo.Name":          "Product name is required",
	"ProductInfo.Price":         "Price must be greater than 0",
	"ProductInfo.Quantity":      "Quantity cannot be negative",
	"ProductInfo.Description":   "Description is required",
	"ProductInfo.CategoryID":    "Category is required",
	"ProductInfo.ProductImages": "At least one product image is required",

	"Category.CategoryName": "Category name is required",
	"Category.Description":  "Description is required",
	"Category.Image":        "Category image is required",

	"UserInfo.UserName":     "Username is required",
	"UserInfo.UserPassword": "Password is required",
	"UserInfo.UserFullName": "Full name is required",
	"UserInfo.UserAddress":  "Address is required",
	"UserInfo.UserPhone":    "Phone number is required",
	"UserInfo.UserEmail":    "Email address is invalid",

	"CartInfo.UserName":    "Customer is required",
	"CartInfo.CartDetails": "At least one item is required",
	"CartInfo.ProductName": "Item product name is required",
	"CartInfo.Price":       "Item price cannot be negative",
	"CartInfo.Quantity":    "Item quantity must be greater than 0",
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func (p ProductInfo) Validate() error {
	return translate(validatorInstance().Struct(p), p)
}

// ValidateWithoutImages checks every field but ProductImages, for forms that
// still have a picture to upload.
func (p ProductInfo) ValidateWithoutImages() error {
	return translate(validatorInstance().StructExcept(p, "ProductImages"), p)
}

func (c Category) Validate() error {
	return translate(validatorInstance().Struct(c), c)
}

// Validate checks an order about to be created. Status and date are defaulted
// by the caller, not validated here.
func (c CartInfo) Validate() error {
	return translate(validatorInstance().Struct(c), c)
}

// Validate checks a user about to be created.
func (u UserInfo) Validate() error {
	return translate(validatorInstance().Struct(u), u)
}

// ValidateUpdate checks a user edit, where a blank password keeps the stored one.
func (u UserInfo) ValidateUpdate() error {
	return translate(validatorInstance().StructExcept(u, "UserPassword"), u)
}

func translate(err error, subject any) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	typeName := reflect.TypeOf(subject).Name()
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		msg, ok := messages[typeName+"."+fe.StructField()]
		if !ok {
			msg = fe.StructField() + " is invalid"
		}
		out.Fields = append(out.Fields, fe.StructField())
		out.Messages = append(out.Messages, msg)
	}
	return out
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
