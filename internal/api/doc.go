// Package api 處理 HTTP 請求路由和處理。
//
// 路由在啟動時一次性註冊到 RouteTable，同一個方法和路徑不能註冊兩次。
// 沒有匹配的路徑一律回應 404。
package api
