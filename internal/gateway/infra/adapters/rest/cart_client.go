package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
)

var _ ports.CartService = (*CartClient)(nil)

// CartClient reads and clears the server-side cart.
type CartClient struct {
	*Client
}

func NewCartClient(c *Client) *CartClient {
	return &CartClient{Client: c}
}

type cartProductDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	SalePrice     float64 `json:"sale_price"`
	FeaturedImage string  `json:"featured_image"`
	Size          string  `json:"size"`
	Brand         string  `json:"brand"`
}

type cartItemDTO struct {
	ID       string         `json:"id"`
	Product  cartProductDTO `json:"product"`
	Quantity int            `json:"quantity"`
}

// GetCart returns the current cart snapshot for the user.
func (c *CartClient) GetCart(ctx context.Context, userID string) ([]entity.CartItem, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/cart", userID, nil)
	if err != nil {
		return nil, err
	}

	var dtos []cartItemDTO
	if err := json.Unmarshal(env.Data, &dtos); err != nil {
		return nil, fmt.Errorf("rest: decode cart: %w", err)
	}

	items := make([]entity.CartItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, entity.CartItem{
			ID: d.ID,
			Product: entity.Product{
				ID:            d.Product.ID,
				Name:          d.Product.Name,
				Price:         d.Product.Price,
				SalePrice:     d.Product.SalePrice,
				FeaturedImage: d.Product.FeaturedImage,
				Size:          d.Product.Size,
				Brand:         d.Product.Brand,
			},
			Quantity: d.Quantity,
		})
	}
	return items, nil
}

// Clear empties the user's server-side cart.
func (c *CartClient) Clear(ctx context.Context, userID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/cart/clear", userID, nil)
	return err
}
