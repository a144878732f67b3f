package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/babybot/pkg/config"
	"github.com/papercomputeco/babybot/pkg/topic"
)

var _ = Describe("Config", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		GinkgoT().Setenv(config.APIKeyEnv, "")
		GinkgoT().Setenv(config.BaseURLEnv, "")
		GinkgoT().Setenv(config.ListenEnv, "")
	})

	writeFile := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	Describe("Default", func() {
		It("carries the generation parameters and baby keywords", func() {
			cfg := config.Default()
			Expect(cfg.Completion.Model).To(Equal("command-xlarge"))
			Expect(cfg.Completion.MaxTokens).To(Equal(100))
			Expect(cfg.Completion.Temperature).To(Equal(0.8))
			Expect(cfg.Topic.Keywords).To(Equal(topic.DefaultKeywords))
			Expect(cfg.Server.ListenAddr).To(Equal(":8051"))
		})
	})

	Describe("Load", func() {
		It("fails with a ConfigurationError when the credential is missing", func() {
			_, err := config.Load(writeFile("empty.toml", ""))

			var cfgErr *config.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal(config.APIKeyEnv))
		})

		It("reads the credential and overrides from the environment", func() {
			GinkgoT().Setenv(config.APIKeyEnv, " secret ")
			GinkgoT().Setenv(config.ListenEnv, ":9999")

			cfg, err := config.Load(writeFile("empty.toml", ""))
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Completion.APIKey).To(Equal("secret"))
			Expect(cfg.Server.ListenAddr).To(Equal(":9999"))
		})

		It("decodes the TOML file over the defaults", func() {
			GinkgoT().Setenv(config.APIKeyEnv, "secret")
			path := writeFile("babybot.toml", `
[completion]
model = "command"
temperature = 0.3
timeout_seconds = 5

[topic]
keywords = ["toddler", "nap"]

[messages]
rejection = "Only toddler talk, please."
`)

			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Completion.Model).To(Equal("command"))
			Expect(cfg.Completion.Temperature).To(Equal(0.3))
			Expect(cfg.Completion.MaxTokens).To(Equal(100))
			Expect(cfg.Topic.Keywords).To(Equal([]string{"toddler", "nap"}))
			Expect(cfg.Messages.Rejection).To(Equal("Only toddler talk, please."))
			Expect(cfg.CompletionClientConfig().Timeout).To(Equal(5 * time.Second))
		})

		It("rejects unknown keys", func() {
			GinkgoT().Setenv(config.APIKeyEnv, "secret")
			_, err := config.Load(writeFile("bad.toml", "[completion]\nmodle = \"typo\"\n"))

			var cfgErr *config.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Reason).To(ContainSubstring("completion.modle"))
		})

		It("fails when an explicit file does not exist", func() {
			GinkgoT().Setenv(config.APIKeyEnv, "secret")
			_, err := config.Load(filepath.Join(tmpDir, "missing.toml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = config.Default()
			cfg.Completion.APIKey = "secret"
		})

		It("accepts the defaults", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		DescribeTable("rejects invalid settings",
			func(mutate func(*config.Config), field string) {
				mutate(cfg)
				err := cfg.Validate()

				var cfgErr *config.ConfigurationError
				Expect(errors.As(err, &cfgErr)).To(BeTrue())
				Expect(cfgErr.Field).To(Equal(field))
			},
			Entry("temperature above one", func(c *config.Config) { c.Completion.Temperature = 1.2 }, "completion.temperature"),
			Entry("negative temperature", func(c *config.Config) { c.Completion.Temperature = -0.1 }, "completion.temperature"),
			Entry("zero max tokens", func(c *config.Config) { c.Completion.MaxTokens = 0 }, "completion.max_tokens"),
			Entry("blank keywords", func(c *config.Config) { c.Topic.Keywords = []string{" "} }, "topic.keywords"),
			Entry("empty listen address", func(c *config.Config) { c.Server.ListenAddr = "" }, "server.listen"),
		)
	})
})
