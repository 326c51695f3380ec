// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Authorization
	KeyAccessDenied   = "access.denied"
	KeyBuyerRequired  = "access.buyer_required"
	KeySellerRequired = "access.seller_required"
	KeyShopRequired   = "access.shop_required"

	// Catalog
	KeyCategoryNotFound  = "category.not_found"
	KeyAttributeNotFound = "attribute.not_found"
	KeyAttributeCreated  = "attribute.created"

	// Shops
	KeyShopCreated      = "shop.created"
	KeyShopUpdated      = "shop.updated"
	KeyShopNotFound     = "shop.not_found"
	KeyShopAlreadyOwned = "shop.already_owned"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductNotFound = "product.not_found"

	// Shipping notes
	KeyShippingNoteCreated  = "shipping_note.created"
	KeyShippingNoteNotFound = "shipping_note.not_found"

	// Cart
	KeyCartLinesAdded   = "cart.lines_added"
	KeyCartLinesUpdated = "cart.lines_updated"

	// Orders
	KeyOrderCreated  = "order.created"
	KeyOrderNotFound = "order.not_found"

	// Fulfillments
	KeyFulfillmentUpdated  = "fulfillment.updated"
	KeyFulfillmentNotFound = "fulfillment.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
