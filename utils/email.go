package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// OrderConfirmationData dữ liệu cho template email
type OrderConfirmationData struct {
	MainOrderCode string
	OrderCodes    string // các mã nhận món, cách nhau dấu phẩy
	StallNames    string
	TotalAmount   float64
	PaymentMethod string
	ChangeDue     float64
	DetailLink    string
}

// OrderCancelledData dữ liệu email báo hủy đơn
type OrderCancelledData struct {
	OrderCode   string
	StallName   string
	TotalAmount float64
	Reason      string
	CancelledAt string
}

// SendOrderConfirmationEmail gửi email xác nhận lượt đặt món (async)
func SendOrderConfirmationEmail(to string, data OrderConfirmationData) {
	go func() { // Async để không delay response
		sendTemplate(to, "Xác nhận đặt món #"+data.MainOrderCode, "templates/order_confirmation.html", data)
	}()
}

// SendOrderCancelledEmail gửi email báo đơn đã hủy (async)
func SendOrderCancelledEmail(to string, data OrderCancelledData) {
	go func() {
		sendTemplate(to, "Đơn "+data.OrderCode+" đã được hủy", "templates/order_cancelled.html", data)
	}()
}

func sendTemplate(to, subject, tmplPath string, data any) {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("Lỗi load template email: %v", err)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("Lỗi render template email: %v", err)
		return
	}

	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	port, _ := strconv.Atoi(portStr)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Lỗi gửi email: %v", err)
	}
}
