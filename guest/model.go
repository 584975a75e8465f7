package guest

import (
	"fmt"
	"time"
)

type Guest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Phone     string    `json:"phone" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

func (g Guest) String() string {
	return fmt.Sprintf("%s (ID: %s) | %s | %s", g.Name, g.ID, g.Email, g.Phone)
}
