package models

import "time"

type Channel struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Company struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Contact     string
	Phone       string
	Address     string
	Remark      string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID        int64
	Code      string
	Name      string
	TypeCode  string
	CompanyID int64
	ChannelID *int64
	RuleID    *int64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
