//go:build amd64

package cpufeatures

import "golang.org/x/sys/cpu"

func detectImpl() Features {
	return Features{
		AMD64:  true,
		SSE2:   cpu.X86.HasSSE2,
		SSE41:  cpu.X86.HasSSE41,
		AVX2:   cpu.X86.HasAVX2,
		AVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
	}
}
