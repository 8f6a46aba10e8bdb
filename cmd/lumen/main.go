// Package main provides the Lumen probabilistic programming CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lumen-ml/lumen/dist"
	"github.com/lumen-ml/lumen/infer"
	"github.com/lumen-ml/lumen/optim"
	"github.com/lumen-ml/lumen/param"
	"github.com/lumen-ml/lumen/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Lumen Probabilistic Programming %s\n", version)
			return
		case "demo":
			demo()
			return
		}
	}

	fmt.Println("Lumen - Stochastic Variational Inference for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Fit a mean-field normal guide to toy data")
}

// demo runs a few hundred SVI steps on a conjugate normal model and prints
// the learned posterior location.
func demo() {
	data := []float64{-0.5, 2.0, 1.0, 0.25}

	model := func(r *infer.Run) {
		z := r.Sample("z", dist.NewNormalScalars(0, 1))
		for i, x := range data {
			r.Observe(fmt.Sprintf("x_%d", i), dist.NewNormal(z, tensor.Scalar(1)), tensor.Scalar(x))
		}
	}
	guide := func(r *infer.Run) {
		loc := r.Param("loc", func() *tensor.Tensor { return tensor.Scalar(0) })
		logScale := r.Param("log_scale", func() *tensor.Tensor { return tensor.Scalar(0) })
		r.Sample("z", dist.NewNormal(loc, r.Tape().Exp(logScale)))
	}

	store := param.NewStore()
	elbo := infer.NewELBO(infer.ELBOConfig{
		Estimator:    infer.EstimatorPathwise,
		NumParticles: 10,
		Seed:         1,
	})
	svi := infer.NewSVI(model, guide, store, optim.NewAdam(store, optim.AdamConfig{LR: 0.05}), elbo)

	for step := 0; step < 500; step++ {
		loss, err := svi.Step()
		if err != nil {
			fmt.Fprintln(os.Stderr, "svi:", err)
			os.Exit(1)
		}
		if step%100 == 0 {
			fmt.Printf("step %3d  loss %.3f\n", step, loss)
		}
	}
	fmt.Printf("posterior loc ≈ %.3f (analytic %.3f)\n",
		store.Get("loc").Item(), 2.75/float64(1+len(data)))
}
