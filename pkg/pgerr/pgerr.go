package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые обрабатываются репозиториями
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// Code возвращает SQLSTATE ошибки lib/pq или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	return Code(err) == CodeCheckViolation
}
