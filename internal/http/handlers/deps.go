package handlers

import (
	"ponsiv/internal/repos"
	"ponsiv/internal/services"
)

type Deps struct {
	AuthHandler       *AuthHandler
	ProductHandler    *ProductHandler
	UserHandler       *UserHandler
	EngagementHandler *EngagementHandler
	CartHandler       *CartHandler
	OrderHandler      *OrderHandler
	LookHandler       *LookHandler

	Auth *services.AuthService
}

func NewDeps(r *repos.Repos, photos services.Photos) *Deps {
	authSvc := services.NewAuthService(r.Users, photos)
	catalogSvc := services.NewCatalogService(r.Products)
	cartSvc := services.NewCartService(r.Carts, r.Products, r.Users)
	orderSvc := services.NewOrderService(r.Orders, r.Products, r.Users)
	lookSvc := services.NewLookService(r.Looks, r.Users, photos)
	engSvc := services.NewEngagementService(r.Engagement, r.Products, r.Users)

	return &Deps{
		AuthHandler:       &AuthHandler{Auth: authSvc},
		ProductHandler:    &ProductHandler{Catalog: catalogSvc},
		UserHandler:       &UserHandler{Auth: authSvc},
		EngagementHandler: &EngagementHandler{Eng: engSvc},
		CartHandler:       &CartHandler{Cart: cartSvc},
		OrderHandler:      &OrderHandler{Order: orderSvc},
		LookHandler:       &LookHandler{Looks: lookSvc},
		Auth:              authSvc,
	}
}
