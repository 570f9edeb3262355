package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrDuplicateRoute 表示同一個方法和路徑被註冊了兩次
var ErrDuplicateRoute = errors.New("duplicate route")

// Route 把一個方法和路徑對應到處理器
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

// RouteTable 是啟動時一次性建立的路由表，掛載到引擎之後不再修改
type RouteTable struct {
	routes []Route
	index  map[string]struct{}
}

// NewRouteTable 創建一個空的路由表
func NewRouteTable() *RouteTable {
	return &RouteTable{index: make(map[string]struct{})}
}

// Register 依序加入一條路由，重複的方法和路徑回傳 ErrDuplicateRoute
func (t *RouteTable) Register(method, path string, handlers ...gin.HandlerFunc) error {
	method = strings.ToUpper(method)
	if method == "" {
		return fmt.Errorf("register %q: method is required", path)
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("register %s %q: path must start with /", method, path)
	}
	if len(handlers) == 0 {
		return fmt.Errorf("register %s %s: at least one handler is required", method, path)
	}

	key := method + " " + path
	if _, ok := t.index[key]; ok {
		return fmt.Errorf("register %s %s: %w", method, path, ErrDuplicateRoute)
	}

	t.index[key] = struct{}{}
	t.routes = append(t.routes, Route{Method: method, Path: path, Handlers: handlers})
	return nil
}

// Routes 回傳依註冊順序排列的路由副本
func (t *RouteTable) Routes() []Route {
	routes := make([]Route, len(t.routes))
	copy(routes, t.routes)
	return routes
}

// Mount 把所有路由註冊到 gin
func (t *RouteTable) Mount(r gin.IRoutes) {
	for _, route := range t.routes {
		r.Handle(route.Method, route.Path, route.Handlers...)
	}
}
