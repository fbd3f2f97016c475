package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/entitysystem/ecs"
)

type TagQueryCache struct {
	knownTags []string
}

func NewTagQueryComponent() TagQueryComponent {
	return TagQueryComponent{
		cache: &TagQueryCache{},
	}
}

func (tq *TagQueryComponent) Render(m *ecs.EntityManager) {
	if !imgui.BeginV("Tag Query", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if tq.cache.knownTags == nil || imgui.Button("Refresh Tags") {
		tq.cache.knownTags = knownTags(m)
	}

	imgui.InputTextWithHint("##tag", "Tag...", &tq.tagText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		tq.tagText = ""
	}

	if imgui.TreeNodeStr("Known Tags") {
		for _, tag := range tq.cache.knownTags {
			if imgui.SelectableBoolV(tag, tag == tq.tagText, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				tq.tagText = tag
			}
		}
		imgui.TreePop()
	}

	imgui.Separator()

	tag := strings.TrimSpace(tq.tagText)
	if tag == "" {
		imgui.Text("No tag entered")
		imgui.End()
		return
	}

	matches := m.EntitiesWithTag(tag)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("TagQueryTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Tags")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, e := range matches {
			imgui.TableNextRow()

			imgui.TableSetColumnIndex(0)
			imgui.Text(fmt.Sprintf("%d", e.Id()))

			imgui.TableSetColumnIndex(1)
			imgui.Text(strings.Join(e.Tags().Tags(), ", "))

			imgui.TableSetColumnIndex(2)
			imgui.Text(strings.Join(m.ComponentNames(e), ", "))
		}

		imgui.EndTable()
	}

	imgui.End()
}

// knownTags lists every distinct tag in use, most common first.
func knownTags(m *ecs.EntityManager) []string {
	stats := m.CollectStats()
	tags := make([]string, 0, len(stats.TagBreakdown))
	for _, t := range stats.TagBreakdown {
		tags = append(tags, t.Tag)
	}
	return tags
}
