// Package web contiene las plantillas HTML y los estáticos de la consola, embebidos en el binario.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

// StaticFS sistema de archivos de /static.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("no se pudo crear el sub-FS de estáticos: %v", err)
	}
	return sub
}

// TemplatesFS sistema de archivos de las plantillas.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		log.Fatalf("no se pudo crear el sub-FS de plantillas: %v", err)
	}
	return sub
}
