// Command rootfind runs bisection, Newton, fixed-point, secant and regula
// falsi on every case of an input file and writes a report.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/Giulia1955/Trabalho-Computacional/internal/batch"
	"github.com/Giulia1955/Trabalho-Computacional/internal/solver"
)

func main() {
	in := flag.String("in", "funcoes.txt", "input file, one case per line")
	out := flag.String("out", "resultados.txt", "report file")
	maxIter := flag.Int("maxiter", solver.DefaultParams().MaxIter, "iteration budget per method")
	flag.Parse()

	if err := batch.Process(*in, *out, *maxIter); err != nil {
		if errors.Is(err, batch.ErrNoCases) {
			log.Println("nothing to do")
			return
		}
		log.Fatal(err)
	}
	log.Printf("done, see %s", *out)
}
