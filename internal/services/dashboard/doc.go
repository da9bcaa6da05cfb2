// Package dashboard assembles the overview shown on the console's landing
// page.
package dashboard
