package handler

import (
	"encoding/json"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"
)

type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type Order struct {
	ID            string            `json:"id"`
	CustomerInfo  CustomerInfo      `json:"customerInfo"`
	Items         []json.RawMessage `json:"items"`
	TotalAmount   float64           `json:"totalAmount"`
	PaymentMethod string            `json:"paymentMethod"`
	OrderStatus   string            `json:"orderStatus"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type SubmitOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

func OrderEntityToJSON(o entities.Order) Order {
	return Order{
		ID: o.ID,
		CustomerInfo: CustomerInfo{
			FullName: o.CustomerInfo.FullName,
			Email:    o.CustomerInfo.Email,
			Phone:    o.CustomerInfo.Phone,
			Address:  o.CustomerInfo.Address,
			City:     o.CustomerInfo.City,
			State:    o.CustomerInfo.State,
			Pincode:  o.CustomerInfo.Pincode,
		},
		Items:         o.Items,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		OrderStatus:   string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func OrdersToJSON(orders []entities.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderEntityToJSON(o))
	}
	return out
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ProductEntityToJSON(p entities.Product) Product {
	return Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
	}
}

type GalleryImage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func GalleryImageEntityToJSON(g entities.GalleryImage) GalleryImage {
	return GalleryImage{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Image:       g.Image,
		ImageURL:    g.ImageURL,
		CreatedAt:   g.CreatedAt,
	}
}

type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	ReadTime  string    `json:"readTime"`
	Tags      []string  `json:"tags,omitempty"`
	Image     string    `json:"image,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BlogPostRequest struct {
	Title     string   `json:"title" validate:"required"`
	Excerpt   string   `json:"excerpt" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	ReadTime  string   `json:"readTime" validate:"required"`
	Tags      []string `json:"tags"`
	Image     string   `json:"image"`
	ImageURL  string   `json:"imageUrl"`
	Published *bool    `json:"published"`
}

func BlogPostEntityToJSON(b entities.BlogPost) BlogPost {
	return BlogPost{
		ID:        b.ID,
		Title:     b.Title,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		Author:    b.Author,
		Category:  b.Category,
		ReadTime:  b.ReadTime,
		Tags:      b.Tags,
		Image:     b.Image,
		ImageURL:  b.ImageURL,
		Published: b.Published,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type ContactReplyRequest struct {
	ToEmail string `json:"toEmail" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

func ContactMessageEntityToJSON(m entities.ContactMessage) ContactMessage {
	return ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
