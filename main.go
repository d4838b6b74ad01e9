package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/ByLCY/zinefold/config"
	"github.com/ByLCY/zinefold/convert"
	"github.com/ByLCY/zinefold/imposition"
	"github.com/ByLCY/zinefold/raster"
	canvasrenderer "github.com/ByLCY/zinefold/renderer/canvas"
	"github.com/ByLCY/zinefold/server"
)

func main() {
	input := flag.String("in", "", "8 页 PDF 原稿路径")
	output := flag.String("out", "output/zine.pdf", "PDF 输出路径，- 表示标准输出")
	debug := flag.String("debug", "", "拼版计划调试 JSON 输出路径")
	configPath := flag.String("config", "", "JSON 配置文件路径")
	serve := flag.Bool("serve", false, "以 HTTP 服务方式运行")
	listen := flag.String("listen", "", "覆盖配置中的监听地址")
	dpi := flag.Float64("dpi", 0, "覆盖配置中的光栅化 DPI")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dpi > 0 {
		cfg.DPI = *dpi
	}

	conv := newConverter(cfg)

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := server.New(cfg, conv).Run(ctx); err != nil {
			log.Fatalf("服务异常退出: %v", err)
		}
		return
	}

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(context.Background(), conv, *input, *output, *debug); err != nil {
		log.Fatalf("生成 zine 失败: %v", err)
	}
	if *output != "-" {
		fmt.Printf("已生成 zine：%s\n", *output)
	}
}

func newConverter(cfg config.Config) *convert.Converter {
	c := &convert.Converter{
		Rasterizer: &raster.FitzRasterizer{DPI: cfg.DPI, PageLimit: imposition.PageCount},
		Renderer:   canvasrenderer.NewRenderer(imposition.DPI),
		Options:    cfg.ConvertOptions(),
	}
	if cfg.Preflight {
		c.Counter = &raster.PDFCPUCounter{Relaxed: true}
	}
	return c
}

// run 串联读取、转换与写出。
func run(ctx context.Context, conv *convert.Converter, inputPath, outputPath, debugPath string) error {
	if outputPath == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("拒绝向终端输出 PDF，请重定向标准输出或使用 -out 指定文件")
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("无法读取原稿 %s: %w", inputPath, err)
	}

	out, err := conv.Convert(ctx, convert.Input{Name: filepath.Base(inputPath), Data: data})
	if err != nil {
		return fmt.Errorf("转换失败（%s）: %w", convert.Classify(err), err)
	}

	if debugPath != "" {
		if err := writeDebug(out.Plan, debugPath); err != nil {
			return err
		}
	}

	if outputPath == "-" {
		_, err := os.Stdout.Write(out.PDF)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out.PDF, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(plan *imposition.Plan, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := imposition.WriteDebugJSON(plan, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
