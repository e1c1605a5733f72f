package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/gridstore/network-store/internal/config"
)

var _ = Describe("CLI", func() {
	Context("syncEnv", func() {
		var (
			cfg *config.Configuration
			cmd *cobra.Command
		)

		BeforeEach(func() {
			cfg = config.NewConfigurationWithDefaults()
			cmd = newServeCommand(cfg)
		})

		It("fills unset flags from the environment", func() {
			// Given
			GinkgoT().Setenv("NETWORK_STORE_HTTP_PORT", "9100")
			GinkgoT().Setenv("NETWORK_STORE_STORE_DSN", ":memory:")

			// When
			err := syncEnv(envPrefix)(cmd, nil)

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.HTTPPort).To(Equal(9100))
			Expect(cfg.Store.DSN).To(Equal(":memory:"))
		})

		It("keeps flags given on the command line", func() {
			GinkgoT().Setenv("NETWORK_STORE_HTTP_PORT", "9100")
			Expect(cmd.Flags().Parse([]string{"--http-port", "9200"})).To(Succeed())

			Expect(syncEnv(envPrefix)(cmd, nil)).To(Succeed())
			Expect(cfg.Server.HTTPPort).To(Equal(9200))
		})

		It("fails on a value the flag cannot hold", func() {
			GinkgoT().Setenv("NETWORK_STORE_HTTP_PORT", "not-a-port")

			Expect(syncEnv(envPrefix)(cmd, nil)).NotTo(Succeed())
		})
	})

	Context("newLogger", func() {
		It("builds console and json loggers", func() {
			for _, format := range []string{"console", "json"} {
				logger, err := newLogger(format, "info")
				Expect(err).NotTo(HaveOccurred())
				Expect(logger).NotTo(BeNil())
			}
		})

		It("rejects an unknown level", func() {
			_, err := newLogger("json", "loud")
			Expect(err).To(HaveOccurred())
		})
	})
})
