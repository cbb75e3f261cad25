package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/glyphgrid/screen"
)

func NewResolveStatsComponent(historyFrames int) ResolveStatsComponent {
	return ResolveStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		pendingHist:   make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (rs *ResolveStatsComponent) Render(s *screen.Screen, deltaTime float32) {
	if !imgui.BeginV("Resolve Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := s.Stats()
	rs.record(deltaTime, stats)

	imgui.Text(fmt.Sprintf("Batches: %d (last: %d actions)", stats.Batches, stats.LastBatchSize))
	imgui.Text(fmt.Sprintf("Pending: %d", stats.Pending))
	imgui.Text(fmt.Sprintf("Resolve: last %s, avg %s, min %s, max %s",
		stats.LastResolve, stats.AvgResolve, stats.MinResolve, stats.MaxResolve))
	imgui.Text(fmt.Sprintf("Pool: %d live / %d (grew %d times)", stats.PoolLive, stats.PoolCap, stats.PoolGrown))

	avg := rs.averageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &rs.frameHistory[0], int32(len(rs.frameHistory)))
	imgui.Text("Actions per Batch")
	imgui.PlotLinesFloatPtr("##batchsize", &rs.pendingHist[0], int32(len(rs.pendingHist)))

	if imgui.TreeNodeStr("Action Kinds") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("KindStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Queued")
			imgui.TableSetupColumn("Applied")
			imgui.TableSetupColumn("Failed")
			imgui.TableSetupColumn("Reverted")
			imgui.TableHeadersRow()

			for _, k := range stats.Kinds {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(k.Kind.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", k.Queued))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", k.Applied))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", k.Failed))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", k.Reverted))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.Separator()
	if imgui.Button("Revert Last Batch") {
		_, rs.lastErr = s.RevertBatch()
	}
	imgui.SameLine()
	if imgui.Button("Reapply") {
		_, rs.lastErr = s.ReapplyBatch()
	}
	imgui.SameLine()
	if imgui.Button("Clear Screen") {
		rs.lastErr = s.Clear()
	}
	if rs.lastErr != nil {
		imgui.Text(fmt.Sprintf("error: %v", rs.lastErr))
	}

	imgui.End()
}

func (rs *ResolveStatsComponent) record(deltaTime float32, stats screen.Stats) {
	rs.frameHistory[rs.frameIndex] = deltaTime * 1000.0
	rs.pendingHist[rs.frameIndex] = float32(stats.LastBatchSize)
	rs.frameIndex = (rs.frameIndex + 1) % rs.historyFrames
}

func (rs *ResolveStatsComponent) averageFrameTime() float32 {
	var avg float32
	for _, ft := range rs.frameHistory {
		avg += ft
	}
	return avg / float32(rs.historyFrames)
}
