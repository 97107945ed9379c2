package main

import (
	"log"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/internal/service"
	"go-coffee-ops/internal/ws"
	"go-coffee-ops/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds a demo tenant with the sample coffee catalog and a few completed
// orders. Orders go through the real order service so stock and customer
// aggregates come out consistent.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Tenant{}, &model.Customer{}, &model.Product{}, &model.Order{}, &model.OrderItem{})

	wsHub := ws.NewHub()
	go wsHub.Run()

	tenantRepo := repository.NewTenantRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	customerService := service.NewCustomerService(customerRepo, db)
	productService := service.NewProductService(productRepo, db, wsHub)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, db, wsHub)

	// 3. Demo tenant
	email := "demo@coffeeops.local"
	if _, err := tenantRepo.FindByEmail(email); err == nil {
		log.Fatalf("Tenant %s already seeded", email)
	}

	tenant := &model.Tenant{
		Email:        email,
		BusinessName: "Demo Coffee Co.",
		IsActive:     true,
	}
	if err := tenant.SetPassword("demo123"); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := tenantRepo.Create(tenant); err != nil {
		log.Fatalf("Failed to create tenant: %v", err)
	}
	log.Printf("Tenant created: %s / demo123", email)

	// 4. Catalog
	catalog := []service.CreateProductRequest{
		{Name: "Espresso", Description: "Rich espresso", Category: "Coffee", Price: 3.50, Cost: 0.80, Stock: 500},
		{Name: "Cappuccino", Description: "Espresso with milk", Category: "Coffee", Price: 4.50, Cost: 1.20, Stock: 450},
		{Name: "Latte", Description: "Smooth latte", Category: "Coffee", Price: 4.75, Cost: 1.30, Stock: 480},
	}
	products := make([]*model.Product, 0, len(catalog))
	for i := range catalog {
		product, err := productService.CreateProduct(tenant.ID, &catalog[i])
		if err != nil {
			log.Fatalf("Failed to create product %s: %v", catalog[i].Name, err)
		}
		products = append(products, product)
	}
	log.Printf("Created %d products", len(products))

	// 5. Customers
	demoCustomers := []service.CreateCustomerRequest{
		{Name: "Rheynel", Email: "rheynel@email.com", Phone: "+1-555-0101"},
		{Name: "Keziah", Email: "keziah@email.com", Phone: "+1-555-0102"},
	}
	customers := make([]*model.Customer, 0, len(demoCustomers))
	for i := range demoCustomers {
		customer, err := customerService.CreateCustomer(tenant.ID, &demoCustomers[i])
		if err != nil {
			log.Fatalf("Failed to create customer %s: %v", demoCustomers[i].Name, err)
		}
		customers = append(customers, customer)
	}
	log.Printf("Created %d customers", len(customers))

	// 6. Orders
	for i := 0; i < 5; i++ {
		product := products[i%len(products)]
		customer := customers[i%len(customers)]
		quantity := i%2 + 1

		_, err := orderService.CreateOrder(tenant.ID, &service.CreateOrderRequest{
			CustomerID:    customer.ID,
			Items:         []service.OrderItemRequest{{ProductID: product.ID, Quantity: quantity}},
			PaymentMethod: "card",
			Status:        model.StatusCompleted,
		})
		if err != nil {
			log.Fatalf("Failed to create order: %v", err)
		}
	}
	log.Println("Created 5 orders")
	log.Println("Seed complete")
}
