package main

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/movekit/cmd/movectl/logger"
	"github.com/joshuapare/movekit/internal/align"
	"github.com/joshuapare/movekit/internal/pagebuf"
	"github.com/joshuapare/movekit/move"
)

var (
	routeDstOff int
	routeSrcOff int
	routeShift  int
)

func init() {
	rootCmd.AddCommand(newRouteCmd())
}

func newRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route <n>",
		Short: "Explain how a copy of n bytes would be dispatched",
		Long: `The route command places a source and destination window at the given
page offsets and reports the size class, overlap relation, alignment and the
path the engine selects for a copy of n bytes between them.

Without --shift the windows live in separate buffers. With --shift the
destination starts shift bytes after the source in the same buffer; a
negative shift puts it before.

Example:
  movectl route 40000
  movectl route 40000 --src-off 3
  movectl route 1000 --shift -10 --src-off 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(args)
		},
	}

	cmd.Flags().IntVar(&routeDstOff, "dst-off", 0, "Destination offset from a page boundary (disjoint only)")
	cmd.Flags().IntVar(&routeSrcOff, "src-off", 0, "Source offset from a page boundary")
	cmd.Flags().IntVar(&routeShift, "shift", 0, "Place dst at src+shift in one buffer")
	return cmd
}

// routeInfo describes one routing decision.
type routeInfo struct {
	N               int    `json:"n"`
	Class           string `json:"class"`
	Relation        string `json:"relation"`
	Path            string `json:"path"`
	DstMod32        int    `json:"dst_mod32"`
	SrcMod32        int    `json:"src_mod32"`
	AlignOffset     int    `json:"align_offset"`
	SrcAlignedBulk  bool   `json:"src_aligned_in_bulk"`
	StreamThreshold uint64 `json:"stream_threshold"`
}

func runRoute(args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("invalid length %q: must be a non-negative integer", args[0])
	}
	if routeDstOff < 0 || routeSrcOff < 0 {
		return fmt.Errorf("offsets must be non-negative")
	}

	dst, src, release, err := routeWindows(n)
	if err != nil {
		return err
	}
	defer release()

	info := explainRoute(engine(), dst, src, n)
	logger.Debug("route", "n", n, "path", info.Path, "relation", info.Relation)

	if printed, err := emit(info); printed || err != nil {
		return err
	}

	printInfo("\nRoute for %s:\n", formatBytes(n))
	printInfo("  Class:     %s\n", info.Class)
	printInfo("  Relation:  %s\n", info.Relation)
	printInfo("  Path:      %s\n", info.Path)
	printInfo("  dst %% 32:  %d\n", info.DstMod32)
	printInfo("  src %% 32:  %d\n", info.SrcMod32)
	if n > 256 {
		printInfo("  Align:     dst advances %d bytes before the bulk loop\n", info.AlignOffset)
		printInfo("  Bulk src aligned: %t (stream threshold %s)\n",
			info.SrcAlignedBulk, formatThreshold(info.StreamThreshold))
	}
	return nil
}

// routeWindows maps buffers for the requested layout and returns pointers to
// the dst and src windows. release unmaps them.
func routeWindows(n int) (dst, src unsafe.Pointer, release func(), err error) {
	if routeShift == 0 {
		db, err := pagebuf.New(routeDstOff + n + 1)
		if err != nil {
			return nil, nil, nil, err
		}
		sb, err := pagebuf.New(routeSrcOff + n + 1)
		if err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		release = func() {
			db.Close()
			sb.Close()
		}
		return unsafe.Pointer(&db.Bytes()[routeDstOff]), unsafe.Pointer(&sb.Bytes()[routeSrcOff]), release, nil
	}

	dstOff := routeSrcOff + routeShift
	if dstOff < 0 {
		return nil, nil, nil, fmt.Errorf("shift %d moves dst before the buffer; raise --src-off", routeShift)
	}
	size := max(routeSrcOff, dstOff) + n + 1
	b, err := pagebuf.New(size)
	if err != nil {
		return nil, nil, nil, err
	}
	buf := b.Bytes()
	return unsafe.Pointer(&buf[dstOff]), unsafe.Pointer(&buf[routeSrcOff]), func() { b.Close() }, nil
}

func explainRoute(e move.Engine, dst, src unsafe.Pointer, n int) routeInfo {
	d, s := uintptr(dst), uintptr(src)
	off := align.Offset(d, 32)
	info := routeInfo{
		N:               n,
		Class:           move.ClassOf(uintptr(n)).String(),
		Relation:        "-",
		Path:            e.Path(dst, src, uintptr(n)).String(),
		DstMod32:        int(align.Tail(d, 32)),
		SrcMod32:        int(align.Tail(s, 32)),
		AlignOffset:     int(off),
		SrcAlignedBulk:  align.IsAligned(s+off, 32),
		StreamThreshold: effectiveThreshold(),
	}
	if n > 256 {
		info.Relation = move.Relate(dst, src, uintptr(n)).String()
	}
	return info
}

func formatThreshold(t uint64) string {
	if t == uint64(move.NoStreaming) {
		return "disabled"
	}
	return formatBytes(t)
}
