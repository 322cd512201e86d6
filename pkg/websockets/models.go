package websockets

import "github.com/shopspring/decimal"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeWalletUpdate is sent after a ledger record changes a wallet.
	MessageTypeWalletUpdate MessageType = "walletUpdate"
	// MessageTypeHandover is sent when a work unit changes hands.
	MessageTypeHandover MessageType = "handover"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// WalletUpdatePayload is the payload for a walletUpdate message.
type WalletUpdatePayload struct {
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id"`
	WalletType    string          `json:"wallet_type"`
	Change        decimal.Decimal `json:"change"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// HandoverPayload is the payload for a handover message.
type HandoverPayload struct {
	OrderID    string `json:"order_id"`
	BillNumber string `json:"bill_number"`
	Stage      string `json:"stage"`
	HolderID   string `json:"holder_id"`
}
