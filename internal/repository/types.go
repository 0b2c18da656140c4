package repository

// UserListFilter 用户列表筛选条件
type UserListFilter struct {
	Keyword  string
	Status   string
	Page     int
	PageSize int
}
