package employee

import (
	"context"
	"database/sql"

	"officetime/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, tenantID string, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(user_id::text, ''), first_name, last_name, email, COALESCE(manager_id::text, ''), created_at
    FROM employees
    WHERE tenant_id = $1
    ORDER BY last_name, first_name
    LIMIT $2 OFFSET $3
  `, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.ManagerID, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (s *Store) Create(ctx context.Context, tenantID string, payload Employee) (string, error) {
	var id string
	managerID := sql.NullString{String: payload.ManagerID, Valid: payload.ManagerID != ""}
	userID := sql.NullString{String: payload.UserID, Valid: payload.UserID != ""}
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, user_id, first_name, last_name, email, manager_id)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, tenantID, userID, payload.FirstName, payload.LastName, payload.Email, managerID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    SELECT id FROM employees WHERE tenant_id = $1 AND user_id = $2
  `, tenantID, userID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UserIDByEmployeeID(ctx context.Context, tenantID, employeeID string) (string, error) {
	var userID string
	if err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(user_id::text, '') FROM employees WHERE tenant_id = $1 AND id = $2
  `, tenantID, employeeID).Scan(&userID); err != nil {
		return "", err
	}
	return userID, nil
}

func (s *Store) Get(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(user_id::text, ''), first_name, last_name, email, COALESCE(manager_id::text, ''), created_at
    FROM employees
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, employeeID).Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.ManagerID, &e.CreatedAt)
	return e, err
}

func (s *Store) IsManagerOf(ctx context.Context, tenantID, managerEmployeeID, employeeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE tenant_id = $1 AND id = $2 AND manager_id = $3
  `, tenantID, employeeID, managerEmployeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
