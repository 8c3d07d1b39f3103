package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Millimetres to inches, the unit Chrome's print API expects.
const mmToInch = 1.0 / 25.4

// pageSettledExpr is true once the document plus its subresources (the logo
// image and the report font) have finished loading. SetDocumentContent
// returns as soon as the DOM is swapped in, so printing must wait on this or
// the snapshot can miss whatever was still in flight.
const pageSettledExpr = `document.readyState === "complete"` +
	` && document.fonts.status === "loaded"` +
	` && Array.from(document.images).every((img) => img.complete)`

const pageSettleTimeout = 15 * time.Second

// PDFGenerator prints a rendered HTML document to a paginated PDF file.
type PDFGenerator interface {
	Generate(ctx context.Context, html, footerHTML, outputPath string) error
}

type chromePDFGenerator struct{}

// NewPDFGenerator builds the headless-Chrome backed generator. A browser is
// launched and torn down per call; isolation over throughput.
func NewPDFGenerator() PDFGenerator {
	return &chromePDFGenerator{}
}

func (g *chromePDFGenerator) Generate(ctx context.Context, html, footerHTML, outputPath string) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("font-render-hinting", "medium"),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var settled bool
	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		emulation.SetEmulatedMedia().WithMedia("screen"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.Poll(pageSettledExpr, &settled, chromedp.WithPollingTimeout(pageSettleTimeout)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(210 * mmToInch).
				WithPaperHeight(297 * mmToInch).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate("<div></div>").
				WithFooterTemplate(footerHTML).
				WithMarginTop(14 * mmToInch).
				WithMarginBottom(22 * mmToInch).
				WithMarginLeft(10 * mmToInch).
				WithMarginRight(10 * mmToInch).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("print pdf: %w", err)
	}

	if err := os.WriteFile(outputPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf file: %w", err)
	}
	return nil
}
