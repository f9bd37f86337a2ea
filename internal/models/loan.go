package models

import "time"

// Loan statuses.
const (
	LoanStatusActive   = "ACTIVE"
	LoanStatusReturned = "RETURNED"
)

// Loan records a quantity of a tool lent to a responsible user. Creating a
// loan takes stock from the site; returning it puts the stock back.
type Loan struct {
	ID            int64      `bson:"_id" json:"id"`
	ToolID        int64      `bson:"toolId" json:"toolId"`
	ToolName      string     `bson:"toolName" json:"toolName"`
	ResponsibleID int64      `bson:"responsibleId" json:"responsibleId"`
	HeadquarterID int64      `bson:"headquarterId" json:"headquarterId"`
	Quantity      int        `bson:"quantity" json:"quantity"`
	Notes         string     `bson:"notes,omitempty" json:"notes,omitempty"`
	LoanDate      time.Time  `bson:"loanDate" json:"loanDate"`
	DueDate       *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	ReturnedAt    *time.Time `bson:"returnedAt,omitempty" json:"returnedAt,omitempty"`
	Status        string     `bson:"status" json:"status"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}
