package model

import (
	"time"

	"github.com/daftarhq/daftar/util/json_util"
)

// Role is the capability set a user acts under. Permission checks go through
// Role.Can instead of comparing strings in handlers.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleEngineer   Role = "engineer"
	RoleAccountant Role = "accountant"
	RoleHR         Role = "hr"
	RoleEmployee   Role = "employee"
	RoleDrafter    Role = "drafter"
)

// Permission names a capability a role may hold.
type Permission string

const (
	PermManageUsers   Permission = "manage_users"
	PermManageFinance Permission = "manage_finance"
	PermViewAllAttendance Permission = "view_all_attendance"
	PermManageProjects    Permission = "manage_projects"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin:      {PermManageUsers, PermManageFinance, PermViewAllAttendance, PermManageProjects},
	RoleManager:    {PermManageProjects, PermViewAllAttendance},
	RoleEngineer:   {PermManageProjects},
	RoleAccountant: {PermManageFinance},
	RoleHR:         {PermManageUsers, PermViewAllAttendance},
	RoleEmployee:   {},
	RoleDrafter:    {},
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role covers the given capability.
func (r Role) Can(p Permission) bool {
	for _, held := range rolePermissions[r] {
		if held == p {
			return true
		}
	}
	return false
}

type User struct {
	Id          int                  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string               `json:"name" form:"name" gorm:"not null"`
	Email       string               `json:"email" form:"email" gorm:"uniqueIndex;not null"`
	Password    string               `json:"-" gorm:"not null"`
	Role        Role                 `json:"role" form:"role" gorm:"not null;default:employee"`
	Avatar      string               `json:"avatar,omitempty" form:"avatar"`
	Permissions json_util.RawMessage `json:"permissions,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type Client struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" form:"name" gorm:"not null"`
	Email       string    `json:"email,omitempty" form:"email"`
	Phone       string    `json:"phone" form:"phone" gorm:"not null"`
	CompanyName string    `json:"companyName,omitempty" form:"companyName"`
	Address     string    `json:"address,omitempty" form:"address"`
	Notes       string    `json:"notes,omitempty" form:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectStatus string

const (
	ProjectNew        ProjectStatus = "new"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on_hold"
)

type Project struct {
	Id          int           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string        `json:"title" form:"title" gorm:"not null"`
	ClientId    int           `json:"clientId" form:"clientId" gorm:"not null"`
	Client      *Client       `json:"client,omitempty" gorm:"foreignKey:ClientId"`
	Status      ProjectStatus `json:"status" form:"status" gorm:"not null;default:new"`
	Budget      float64       `json:"budget" form:"budget"`
	StartDate   time.Time     `json:"startDate" form:"startDate"`
	EndDate     time.Time     `json:"endDate" form:"endDate"`
	Team        []User        `json:"team,omitempty" gorm:"many2many:project_team;"`
	Description string        `json:"description,omitempty" form:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type Task struct {
	Id          int          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string       `json:"title" form:"title" gorm:"not null"`
	ProjectId   int          `json:"projectId" form:"projectId" gorm:"not null"`
	Project     *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
	AssigneeId  *int         `json:"assigneeId,omitempty" form:"assigneeId"`
	Assignee    *User        `json:"assignee,omitempty" gorm:"foreignKey:AssigneeId"`
	Status      TaskStatus   `json:"status" form:"status" gorm:"not null;default:todo"`
	Priority    TaskPriority `json:"priority" form:"priority" gorm:"not null;default:medium"`
	DueDate     *time.Time   `json:"dueDate,omitempty" form:"dueDate"`
	Description string       `json:"description,omitempty" form:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	Id            int                  `json:"id" gorm:"primaryKey;autoIncrement"`
	InvoiceNumber string               `json:"invoiceNumber" form:"invoiceNumber" gorm:"uniqueIndex;not null"`
	ClientId      int                  `json:"clientId" form:"clientId" gorm:"not null"`
	Client        *Client              `json:"client,omitempty" gorm:"foreignKey:ClientId"`
	ProjectId     *int                 `json:"projectId,omitempty" form:"projectId"`
	Project       *Project             `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
	Items         json_util.RawMessage `json:"items,omitempty"`
	TotalAmount   float64              `json:"totalAmount" form:"totalAmount"`
	Status        InvoiceStatus        `json:"status" form:"status" gorm:"index;not null;default:draft"`
	IssueDate     time.Time            `json:"issueDate" form:"issueDate"`
	DueDate       time.Time            `json:"dueDate" form:"dueDate" gorm:"not null"`
	CreatedBy     int                  `json:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// InvoiceItem is one line of an invoice, stored serialized in Invoice.Items.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type ExpenseCategory string

const (
	ExpenseOffice    ExpenseCategory = "office"
	ExpenseSalary    ExpenseCategory = "salary"
	ExpenseSoftware  ExpenseCategory = "software"
	ExpenseMarketing ExpenseCategory = "marketing"
	ExpenseOther     ExpenseCategory = "other"
)

type Expense struct {
	Id          int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string          `json:"title" form:"title" gorm:"not null"`
	Amount      float64         `json:"amount" form:"amount" gorm:"not null"`
	Category    ExpenseCategory `json:"category" form:"category" gorm:"index;not null;default:other"`
	Date        time.Time       `json:"date" form:"date" gorm:"not null"`
	Description string          `json:"description,omitempty" form:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type TransactionType string

const (
	Income  TransactionType = "income"
	Outcome TransactionType = "expense"
)

type Transaction struct {
	Id          int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Type        TransactionType `json:"type" form:"type" gorm:"index;not null"`
	Amount      float64         `json:"amount" form:"amount" gorm:"not null"`
	Category    string          `json:"category" form:"category" gorm:"not null"`
	Description string          `json:"description,omitempty" form:"description"`
	Date        time.Time       `json:"date" form:"date"`
	ProjectId   *int            `json:"projectId,omitempty" form:"projectId"`
	Project     *Project        `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
	ClientId    *int            `json:"clientId,omitempty" form:"clientId"`
	Client      *Client         `json:"client,omitempty" gorm:"foreignKey:ClientId"`
	CreatedBy   int             `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Excused AttendanceStatus = "excused"
)

// Attendance is one check-in/check-out pair per user per calendar day. Date
// is normalized to midnight in the configured time location; the composite
// unique index is what makes concurrent check-ins safe.
type Attendance struct {
	Id        int              `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId    int              `json:"userId" gorm:"uniqueIndex:idx_attendance_user_date;not null"`
	User      *User            `json:"user,omitempty" gorm:"foreignKey:UserId"`
	Date      time.Time        `json:"date" gorm:"uniqueIndex:idx_attendance_user_date;not null"`
	CheckIn   time.Time        `json:"checkIn"`
	CheckOut  *time.Time       `json:"checkOut,omitempty"`
	Status    AttendanceStatus `json:"status" gorm:"not null;default:present"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}
