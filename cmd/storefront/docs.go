package main

// @title StudiMarket Storefront API
// @version 1.0
// @description School supplies storefront API with catalog, cart, wishlist, checkout and reviews

// @contact.name API Support
// @contact.url https://github.com/studimarket/storefront
// @contact.email support@studimarket.example

// @license.name MIT
// @license.url https://github.com/studimarket/storefront/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Cart
// @tag.description Shopping cart endpoints

// @tag.name Wishlist
// @tag.description Wishlist endpoints

// @tag.name Checkout
// @tag.description Checkout and order endpoints

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Reviews
// @tag.description Product review endpoints

// @tag.name Health
// @tag.description Health check endpoints
