package main

import "github.com/garvthakre/kf12/internal/app"

// @title           KF12 CRM API
// @version         1.0
// @description     Мультитенантный CRM-бэкенд: лиды, контакты, сделки, задачи, ingestion с выставок.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
