package server

import "github.com/snapledger/snapledger/internal/models"

// API response shapes. Kept separate from the domain models so internal
// fields (password hashes, raw payloads) never leak into responses.

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type itemResponse struct {
	ID        string  `json:"id"`
	ReceiptID string  `json:"receiptId"`
	ItemName  string  `json:"itemName"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Category  string  `json:"category,omitempty"`
}

type receiptResponse struct {
	ID            string         `json:"id"`
	StoreName     string         `json:"storeName"`
	ReceiptDate   string         `json:"receiptDate"`
	TotalAmount   float64        `json:"totalAmount"`
	TotalDiscount float64        `json:"totalDiscount"`
	Items         []itemResponse `json:"items"`
	CreatedAt     int64          `json:"createdAt"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

func toItemResponse(item *models.ExpenseItem) itemResponse {
	return itemResponse{
		ID:        item.ID,
		ReceiptID: item.ReceiptID,
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Category:  item.Category,
	}
}

func toReceiptResponse(receipt *models.Receipt) receiptResponse {
	items := make([]itemResponse, len(receipt.Items))
	for i := range receipt.Items {
		items[i] = toItemResponse(&receipt.Items[i])
	}
	return receiptResponse{
		ID:            receipt.ID,
		StoreName:     receipt.StoreName,
		ReceiptDate:   receipt.ReceiptDate,
		TotalAmount:   receipt.TotalAmount,
		TotalDiscount: receipt.TotalDiscount,
		Items:         items,
		CreatedAt:     receipt.CreatedAt,
	}
}
