package model

type AssistantRole string

const (
	RoleUser      AssistantRole = "user"
	RoleAssistant AssistantRole = "assistant"
	RoleSystem    AssistantRole = "system"
)

type AssistantThread struct {
	UUIDBase
	UserID   uint               `gorm:"index;not null" json:"userId"`
	Title    string             `gorm:"size:160;default:'New Assistant Session'" json:"title"`
	IsActive bool               `gorm:"default:true" json:"isActive"`
	Messages []AssistantMessage `gorm:"foreignKey:ThreadID" json:"messages,omitempty"`
}

func (AssistantThread) TableName() string {
	return "assistant_threads"
}

type AssistantMessage struct {
	BaseModel
	ThreadID string        `gorm:"index;type:varchar(36);not null" json:"threadId"`
	Role     AssistantRole `gorm:"type:varchar(16);not null" json:"role"`
	Content  string        `gorm:"type:text;not null" json:"content"`
}

func (AssistantMessage) TableName() string {
	return "assistant_messages"
}
