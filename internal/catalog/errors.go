package catalog

import "errors"

var (
	// ErrNameRejected is returned for blank, numeric or reserved group and product names.
	ErrNameRejected = errors.New("name rejected")
	// ErrGroupNotFound indicates the selector matched no group.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupExists is returned when creating or renaming onto an existing group name.
	ErrGroupExists = errors.New("group already exists")
	// ErrProductNotFound indicates the product is not stocked in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists is returned when a product name is already used anywhere in the catalog.
	ErrProductExists = errors.New("product already exists")
	// ErrNotANumber is returned when operator text must be a non-negative integer and is not.
	ErrNotANumber = errors.New("not a number")
	// ErrDiscountOutOfRange is returned when a supplied discount falls outside 1..100.
	ErrDiscountOutOfRange = errors.New("discount out of range")
)
