package configuration_test

import (
	"github.com/Scusemua/go-utils/config"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scusemua/chained-hashmap/common/configuration"
)

var _ = Describe("MapOptions", func() {
	It("should default to 16 buckets, a 0.75 load factor and a growth factor of 2", func() {
		opts := configuration.DefaultMapOptions()
		Expect(opts.InitialSize).To(Equal(16))
		Expect(opts.LoadFactor).To(Equal(0.75))
		Expect(opts.GrowthFactor).To(Equal(2))
		Expect(opts.Validate()).To(Succeed())
	})

	DescribeTable("should reject unusable values",
		func(mutate func(*configuration.MapOptions)) {
			opts := configuration.DefaultMapOptions()
			mutate(opts)
			err := opts.Validate()
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, configuration.ErrInvalidOptions)).To(BeTrue())
		},
		Entry("zero initial size", func(o *configuration.MapOptions) { o.InitialSize = 0 }),
		Entry("zero load factor", func(o *configuration.MapOptions) { o.LoadFactor = 0 }),
		Entry("load factor above one", func(o *configuration.MapOptions) { o.LoadFactor = 1.5 }),
		Entry("growth factor of one", func(o *configuration.MapOptions) { o.GrowthFactor = 1 }),
	)

	It("should clone without sharing state", func() {
		opts := configuration.DefaultMapOptions()
		clone := opts.Clone()
		clone.InitialSize = 64
		Expect(opts.InitialSize).To(Equal(16))
	})

	It("should render as JSON", func() {
		var decoded map[string]interface{}
		Expect(json.Unmarshal([]byte(configuration.DefaultMapOptions().String()), &decoded)).To(Succeed())
		Expect(decoded).To(HaveKeyWithValue("initial-size", BeNumerically("==", 16)))
		Expect(decoded).To(HaveKeyWithValue("load-factor", BeNumerically("==", 0.75)))
	})
})

var _ = Describe("ShellOptions", func() {
	It("should parse map and shell flags", func() {
		opts := configuration.DefaultShellOptions()
		_, err := config.ValidateOptionsWithFlags(opts,
			"-initial-size", "32", "-load-factor", "0.5", "-backend", "haxmap", "-styled")
		Expect(err).ToNot(HaveOccurred())

		Expect(opts.InitialSize).To(Equal(32))
		Expect(opts.LoadFactor).To(Equal(0.5))
		Expect(opts.GrowthFactor).To(Equal(2))
		Expect(opts.Backend).To(Equal("haxmap"))
		Expect(opts.Styled).To(BeTrue())
	})

	It("should fail validation on bad map flags", func() {
		opts := configuration.DefaultShellOptions()
		_, err := config.ValidateOptionsWithFlags(opts, "-growth-factor", "1")
		Expect(errors.Is(err, configuration.ErrInvalidOptions)).To(BeTrue())
	})

	It("should parse and bound the metrics port", func() {
		opts := configuration.DefaultShellOptions()
		Expect(opts.PrometheusPort).To(Equal(0))

		_, err := config.ValidateOptionsWithFlags(opts, "-prometheus-port", "9090")
		Expect(err).ToNot(HaveOccurred())
		Expect(opts.PrometheusPort).To(Equal(9090))

		opts = configuration.DefaultShellOptions()
		_, err = config.ValidateOptionsWithFlags(opts, "-prometheus-port", "70000")
		Expect(errors.Is(err, configuration.ErrInvalidOptions)).To(BeTrue())
	})

	It("should report a usage request", func() {
		opts := configuration.DefaultShellOptions()
		_, err := config.ValidateOptionsWithFlags(opts, "-h")
		Expect(err).To(MatchError(config.ErrPrintUsage))
	})

	It("should pretty print", func() {
		opts := configuration.DefaultShellOptions()
		Expect(opts.PrettyString(2)).To(ContainSubstring("\n  \"backend\": \"chained\""))
	})
})
