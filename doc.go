// Package tex2im renders LaTeX snippets to raster images using an external
// LaTeX compiler and an ImageMagick-style converter.
//
// # Quick Start
//
// Build a request, then render it:
//
//	req := tex2im.DefaultRequest(tex2im.Source{Snippet: `\int_0^1 x\,dx`})
//	req.WorkingDir = "/path/to/project"
//	req.HomeDir = home
//
//	r := tex2im.NewRenderer()
//	result, err := r.Render(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Path) // /path/to/project/out.png
//
// # Rendering Pipeline
//
// Each render runs in a private temporary directory:
//
//  1. The snippet is wrapped into a standalone document (Assemble)
//  2. The compiler template runs through the platform shell on out.tex
//  3. The converter turns out.pdf into the requested format
//  4. For the html format, the PNG is embedded into an <img> tag
//  5. The result is copied to the output directory or streamed
//
// A failing compiler or converter does not stop the pipeline. The failure is
// logged and recorded in Result.Compile or Result.Convert, and whatever the
// converter produced is still delivered.
//
// # Output Location
//
// Output paths never depend on the process working directory: relative
// paths resolve against Request.WorkingDir. The output directory is never
// created; a missing directory fails with ErrWriteOutput.
//
// # Preamble Search
//
// Extra preamble lines come from the first existing file among the explicit
// Request.Preamble, ./.tex2im_preamble, ~/.tex2im_preamble and
// ~/.tex2im_header. Set Request.NoPreamble to skip the dotfiles.
//
// # Concurrency
//
// A Renderer is safe for concurrent use. Batch callers give each request a
// distinct index with Request.WithIndex so inline snippets do not overwrite
// each other's output.
package tex2im
