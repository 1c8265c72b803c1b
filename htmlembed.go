package tex2im

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// EmbedPNG wraps PNG bytes into an <img> tag with a base64 data URI.
func EmbedPNG(png []byte) string {
	code := base64.StdEncoding.EncodeToString(png)
	return fmt.Sprintf(`<img src="data:image/png;base64,%s" >`, code)
}

// embedHTMLFile reads the PNG the converter wrote in workDir and writes the
// HTML fragment next to it. Returns the HTML file name.
func embedHTMLFile(workDir string, out Output) (string, error) {
	png, err := os.ReadFile(filepath.Join(workDir, out.File)) // #nosec G304 -- work directory file
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLEmbed, err)
	}

	name := out.FinalFile()
	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(filepath.Join(workDir, name), []byte(EmbedPNG(png)), filePermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLEmbed, err)
	}
	return name, nil
}
