// Package meshgrab reconstructs 3D meshes from a WebGL rendering session and
// exports them as Wavefront OBJ files.
//
// The browser viewer is never asked for its scene. Instead the capture layer
// wraps the rendering context and watches four calls: bindBuffer, bufferData,
// vertexAttribPointer and drawArrays. A buffer that receives a Float32Array
// and is later described as a tightly packed vec3 float attribute is taken to
// be a position stream, and every TRIANGLES draw that reads from it is
// captured as one mesh. Indexed draws, interleaved layouts and anything other
// than positions are not captured.
//
// The CLI lives in cmd/meshgrab; this root package exposes the replay
// pipeline and the capture/export bridge as a Go API.
//
// # Quick start
//
//	result, err := meshgrab.Run(ctx, meshgrab.Options{
//	    TracePath:  "viewer.trace.jsonl",
//	    OutputDir:  "models",
//	    ProductURL: "https://www.lcsc.com/product-detail/C2040.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Artifact == nil {
//	    fmt.Println(result.Notice)
//	}
//
// # Embedding the capture layer
//
//	b := meshgrab.NewBridge(objexport.DirSaver{Dir: "models"}, nil)
//	gl = b.Install(gl) // keep rendering through the returned context
//	...
//	art, notice, err := b.Post([]byte(`{"type":"EASYEDA_EXPORT_OBJ"}`))
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output. *logrus.Logger satisfies it.
//
// # Live capture
//
// pkg/server accepts the GL call stream and export requests from an in-page
// shim over websockets; see the serve command.
package meshgrab
