// Package errors provides standardized error types for the storefront.
// It defines common error values, a typed not-found error, and helper
// functions for checking errors returned by the storefront packages.
//
// Package errors 提供商店前端的标准化错误类型。
// 它定义了常见错误值、类型化的未找到错误以及用于检查错误的辅助函数。
package errors

import (
	"errors"
	"fmt"
)

// Standard errors that can be returned by the storefront.
//
// 商店前端可能返回的标准错误。
var (
	// ErrProductNotFound is returned when a product id is not in the catalog.
	// 当目录中不存在产品ID时返回ErrProductNotFound。
	ErrProductNotFound = errors.New("store: product not found")

	// ErrOrderNotFound is returned when no placed order is available.
	// 当没有可用的已下订单时返回ErrOrderNotFound。
	ErrOrderNotFound = errors.New("store: order not found")

	// ErrUnknownView is returned when a view name is outside the closed view set.
	// 当视图名称不在封闭视图集合中时返回ErrUnknownView。
	ErrUnknownView = errors.New("store: unknown view")

	// ErrUnknownLanguage is returned for an unsupported display language.
	// 当显示语言不受支持时返回ErrUnknownLanguage。
	ErrUnknownLanguage = errors.New("store: unknown language")

	// ErrUnknownSortKey is returned for an unsupported sort key.
	// 当排序键不受支持时返回ErrUnknownSortKey。
	ErrUnknownSortKey = errors.New("store: unknown sort key")

	// ErrUnknownPaymentMethod is returned for a payment method outside the closed set.
	// 当支付方式不在封闭集合中时返回ErrUnknownPaymentMethod。
	ErrUnknownPaymentMethod = errors.New("store: unknown payment method")

	// ErrUnknownField is returned when a form field name does not exist.
	// 当表单字段名称不存在时返回ErrUnknownField。
	ErrUnknownField = errors.New("store: unknown form field")

	// ErrNotAtReview is returned when an order is placed before the review step.
	// 当在审核步骤之前下单时返回ErrNotAtReview。
	ErrNotAtReview = errors.New("store: checkout is not at the review step")

	// ErrIncompleteShipping is returned when required shipping fields are blank.
	// 当必填的配送字段为空时返回ErrIncompleteShipping。
	ErrIncompleteShipping = errors.New("store: shipping information incomplete")

	// ErrInvalidForm is returned when a submitted form fails validation.
	// 当提交的表单验证失败时返回ErrInvalidForm。
	ErrInvalidForm = errors.New("store: invalid form")
)

// NotFoundError represents a lookup that failed for a specific id.
// It wraps an underlying sentinel with the kind and id that caused it.
//
// NotFoundError 表示针对特定ID的查找失败。
// 它用导致错误的类型和ID包装底层哨兵错误。
type NotFoundError struct {
	Kind string // Kind of entity, e.g. "product" / 实体类型
	ID   string // The id that was not found / 未找到的ID
	Err  error  // The underlying error / 底层错误
}

// Error returns the error message.
//
// Error 返回错误消息。
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Err, e.Kind, e.ID)
}

// Unwrap returns the underlying error so errors.Is works with wrapped errors.
//
// Unwrap 返回底层错误，使errors.Is能处理包装的错误。
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewProductNotFound creates a NotFoundError for a product id.
//
// Parameters:
//   - id: The product id that was not found
//
// Returns:
//   - *NotFoundError: A new not-found error wrapping ErrProductNotFound
func NewProductNotFound(id string) *NotFoundError {
	return &NotFoundError{Kind: "product", ID: id, Err: ErrProductNotFound}
}

// IsNotFound returns true if the error indicates a missing product or order.
//
// IsNotFound 如果错误表示缺少产品或订单，则返回true。
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrOrderNotFound)
}

// IsValidation returns true if the error was caused by caller input that
// failed validation rather than by a missing entity.
//
// IsValidation 如果错误由未通过验证的调用方输入引起，则返回true。
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrUnknownView,
		ErrUnknownLanguage,
		ErrUnknownSortKey,
		ErrUnknownPaymentMethod,
		ErrUnknownField,
		ErrNotAtReview,
		ErrIncompleteShipping,
		ErrInvalidForm,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
