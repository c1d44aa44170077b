package model

type Product struct {
	ID              int32  `json:"id"`
	Name            string `json:"name"`
	Cost            int32  `json:"cost"`
	AmountAvailable int32  `json:"amount_available"`
	SellerID        string `json:"seller_id"`
}

// ProductPatch carries the seller-editable fields of a product.
type ProductPatch struct {
	Name            string
	Cost            int32
	AmountAvailable int32
}

type CreateProductRequest struct {
	ID              int32  `json:"id"`
	Name            string `json:"name"`
	Cost            int32  `json:"cost"`
	AmountAvailable int32  `json:"amount_available"`
}

type UpdateProductRequest struct {
	Name            string `json:"name"`
	Cost            int32  `json:"cost"`
	AmountAvailable int32  `json:"amount_available"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
}
