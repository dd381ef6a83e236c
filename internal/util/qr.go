package util

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// PrintTerminalQR renders value as a scannable QR code on stdout. Used for
// handing share URLs to a phone without typing them out.
func PrintTerminalQR(value string) {
	qr, err := qrcode.New(value, qrcode.Medium)
	if err != nil {
		return
	}
	fmt.Println(qr.ToSmallString(false))
}
