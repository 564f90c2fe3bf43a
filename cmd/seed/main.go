// seed genera un script SQL para poblar productos y clientes a partir de hojas CSV
// (UTF-8 o ISO-8859-1, separador ',' o ';').
//
// Uso: go run ./cmd/seed productos.csv [clientes.csv]
// Escribe: internal/infrastructure/postgres/seeds/catalog.sql
// El stock solo se fija al insertar; volver a ejecutar el script no pisa el stock vendido.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed productos.csv [clientes.csv]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV de productos: %v\n", err)
		os.Exit(1)
	}
	products, err := parseProducts(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Productos: %v\n", err)
		os.Exit(1)
	}

	var clients []clientRow
	if len(os.Args) > 2 {
		raw, err := os.ReadFile(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV de clientes: %v\n", err)
			os.Exit(1)
		}
		if clients, err = parseClients(raw); err != nil {
			fmt.Fprintf(os.Stderr, "Clientes: %v\n", err)
			os.Exit(1)
		}
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds", "catalog.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, products, clients); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d clientes\n", outPath, len(products), len(clients))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
