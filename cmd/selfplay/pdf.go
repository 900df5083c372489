package main

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

func generatePDF(results []gameResult, output string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Courier", "", 10)

	for _, res := range results {
		pdf.AddPage()
		pdf.Cell(40, 10, res.Title())
		pdf.Ln(10)

		for _, line := range strings.Split(res.Final.String(), "\n") {
			pdf.MultiCell(0, 4.5, line, "", "L", false)
		}
	}

	return pdf.OutputFileAndClose(output)
}
