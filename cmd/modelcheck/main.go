// Command modelcheck probes a configured vision model with a text request
// and a tiny image request, and explains common configuration failures.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/franckalain/nutritionguard/internal/ml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// 1x1 transparent PNG
const probeImage = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func main() {
	modelType := flag.String("model", "openai", "model backend: openai, google or stub")
	configPath := flag.String("config", "", "optional backend configuration file")
	timeout := flag.Duration("timeout", 90*time.Second, "timeout per request")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	model, err := ml.NewModel(*modelType, *configPath, logger)
	if err != nil {
		fail(err)
	}
	defer model.Close()

	if err := model.Load(context.Background()); err != nil {
		fail(err)
	}
	fmt.Printf("Testing model %s\n", model.Name())

	checks := []struct {
		name string
		req  ml.Request
	}{
		{"text", ml.Request{Instruction: "Reply with the single word OK."}},
		{"vision", ml.Request{Instruction: "Describe this image in one short sentence.", ImageBase64: probeImage}},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		start := time.Now()
		out, err := model.ProcessImage(ctx, check.req)
		cancel()
		if err != nil {
			fmt.Printf("FAIL %s request: %v\n", check.name, err)
			hint(err)
			os.Exit(1)
		}
		fmt.Printf("OK   %s request (%s): %s\n", check.name, time.Since(start).Round(time.Millisecond), out)
	}

	fmt.Println("Model is ready for image analysis")
}

func fail(err error) {
	fmt.Printf("FAIL %v\n", err)
	hint(err)
	os.Exit(1)
}

func hint(err error) {
	switch {
	case ml.IsQuotaError(err):
		fmt.Println("hint: the account is out of quota or rate limited; check billing and usage limits")
	case ml.IsModelNotFound(err):
		fmt.Printf("hint: the model name is not available to this account; image capable models include %v\n",
			ml.SupportedOpenAIModels)
	}
}
