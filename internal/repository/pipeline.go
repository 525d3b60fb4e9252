package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Stage 聚合管道中的一个阶段，按顺序编译进同一条 SQL
type Stage interface {
	apply(b *builder)
}

// builder 编译期状态，Select 在最后一次性设置
type builder struct {
	root      *gorm.DB
	tx        *gorm.DB
	base      string
	selects   []string
	vars      []interface{}
	countOnly bool
	grouped   bool
}

func (b *builder) addSelect(expr string, vars ...interface{}) {
	b.selects = append(b.selects, expr)
	b.vars = append(b.vars, vars...)
}

// subquery 基于同一连接新建一个不带任何条件的会话
func (b *builder) subquery(table string) *gorm.DB {
	return b.root.Session(&gorm.Session{NewDB: true}).Table(table)
}

// finish 把累积的投影写入 Select
func (b *builder) finish() *gorm.DB {
	if len(b.selects) == 0 {
		return b.tx
	}
	sql := strings.Join(b.selects, ", ")
	if len(b.vars) == 0 {
		return b.tx.Select(sql)
	}
	return b.tx.Select(sql, b.vars...)
}

// Pipeline 以某张表为起点的阶段序列
type Pipeline struct {
	db     *gorm.DB
	base   string
	stages []Stage
}

// NewPipeline 创建管道
func NewPipeline(db *gorm.DB, base string, stages ...Stage) *Pipeline {
	return &Pipeline{db: db, base: base, stages: stages}
}

// Then 追加阶段，返回新管道，原管道不变
func (p *Pipeline) Then(stages ...Stage) *Pipeline {
	merged := make([]Stage, 0, len(p.stages)+len(stages))
	merged = append(merged, p.stages...)
	merged = append(merged, stages...)
	return &Pipeline{db: p.db, base: p.base, stages: merged}
}

func (p *Pipeline) compile(ctx context.Context, countOnly bool) *builder {
	b := &builder{
		root:      p.db,
		tx:        p.db.WithContext(ctx).Table(p.base),
		base:      p.base,
		countOnly: countOnly,
	}
	for _, s := range p.stages {
		s.apply(b)
	}
	return b
}

// Run 执行管道并把结果扫描进 dest（结构体切片）
func (p *Pipeline) Run(ctx context.Context, dest interface{}) error {
	if err := p.compile(ctx, false).finish().Scan(dest).Error; err != nil {
		return translate(err, "查询")
	}
	return nil
}

// Page 在管道末尾加上窗口后执行
func (p *Pipeline) Page(ctx context.Context, offset, limit int, dest interface{}) error {
	return p.Then(Skip(offset), Limit(limit)).Run(ctx, dest)
}

// Count 只使用过滤类阶段统计行数，分组管道统计分组数
func (p *Pipeline) Count(ctx context.Context) (int64, error) {
	b := p.compile(ctx, true)

	var total int64
	var err error
	if b.grouped {
		err = p.db.WithContext(ctx).Table("(?) AS grouped", b.finish()).Count(&total).Error
	} else {
		err = b.tx.Count(&total).Error
	}
	if err != nil {
		return 0, translate(err, "统计")
	}
	return total, nil
}

// ---------- Match ----------

type matchStage struct {
	query string
	args  []interface{}
}

// Match 过滤条件，参数可以是子查询
func Match(query string, args ...interface{}) Stage {
	return matchStage{query: query, args: args}
}

func (s matchStage) apply(b *builder) {
	b.tx = b.tx.Where(s.query, s.args...)
}

// ---------- Join ----------

// JoinSpec 按外键左外连接另一张表，并以 Prefix 前缀投影其字段
type JoinSpec struct {
	Table      string
	Alias      string
	LocalKey   string // 形如 posts.owner_id
	ForeignKey string // 连接表中的列名，默认 id
	Fields     []string
	Prefix     string
}

type joinStage struct{ spec JoinSpec }

// Join 左外连接，未匹配时连接字段为 NULL
func Join(spec JoinSpec) Stage {
	if spec.ForeignKey == "" {
		spec.ForeignKey = "id"
	}
	if spec.Alias == "" {
		spec.Alias = spec.Table
	}
	return joinStage{spec: spec}
}

func (s joinStage) apply(b *builder) {
	sp := s.spec
	b.tx = b.tx.Joins(fmt.Sprintf("LEFT JOIN %s AS %s ON %s.%s = %s",
		sp.Table, sp.Alias, sp.Alias, sp.ForeignKey, sp.LocalKey))
	if b.countOnly {
		return
	}
	for _, f := range sp.Fields {
		b.addSelect(fmt.Sprintf("%s.%s AS %s%s", sp.Alias, f, sp.Prefix, f))
	}
}

// ---------- Lookup ----------

// Accumulator 关联集合上的聚合方式
type Accumulator interface {
	expr(b *builder, sub *gorm.DB, as string)
}

type countAcc struct{}

// Count 关联集合的大小，无匹配时为 0
func Count() Accumulator { return countAcc{} }

func (countAcc) expr(b *builder, sub *gorm.DB, as string) {
	b.addSelect(fmt.Sprintf("(?) AS %s", as), sub.Select("COUNT(*)"))
}

type hasAcc struct {
	column string
	value  interface{}
}

// Has 关联集合中某列是否包含给定值，无匹配时为 false
func Has(column string, value interface{}) Accumulator {
	return hasAcc{column: column, value: value}
}

func (a hasAcc) expr(b *builder, sub *gorm.DB, as string) {
	b.addSelect(fmt.Sprintf("EXISTS (?) AS %s", as),
		sub.Select("1").Where(fmt.Sprintf("%s = ?", a.column), a.value))
}

// LookupSpec 与另一集合的相关子查询
type LookupSpec struct {
	From         string
	ForeignField string // From 表中的列
	LocalField   string // 外层查询中的列，可以是连接别名下的列
	Stages       []Stage
	As           string
	Acc          Accumulator
}

type lookupStage struct{ spec LookupSpec }

// Lookup 相关子查询，结果以 As 命名
func Lookup(spec LookupSpec) Stage {
	return lookupStage{spec: spec}
}

func (s lookupStage) apply(b *builder) {
	if b.countOnly {
		return
	}
	sp := s.spec
	inner := &builder{
		root: b.root,
		tx: b.subquery(sp.From).
			Where(fmt.Sprintf("%s.%s = %s", sp.From, sp.ForeignField, sp.LocalField)),
		base:      sp.From,
		countOnly: true,
	}
	for _, st := range sp.Stages {
		st.apply(inner)
	}
	sp.Acc.expr(b, inner.tx, sp.As)
}

// ---------- AddFields / Project ----------

// Field 计算字段
type Field struct {
	Name string
	Expr string
	Vars []interface{}
}

// Literal 常量字段，布尔与整数直接写入 SQL
func Literal(name string, value interface{}) Field {
	switch v := value.(type) {
	case bool:
		if v {
			return Field{Name: name, Expr: "TRUE"}
		}
		return Field{Name: name, Expr: "FALSE"}
	case int:
		return Field{Name: name, Expr: fmt.Sprintf("%d", v)}
	case int64:
		return Field{Name: name, Expr: fmt.Sprintf("%d", v)}
	default:
		return Field{Name: name, Expr: "?", Vars: []interface{}{v}}
	}
}

// Computed 表达式字段
func Computed(name, expr string, vars ...interface{}) Field {
	return Field{Name: name, Expr: expr, Vars: vars}
}

type addFieldsStage struct{ fields []Field }

// AddFields 追加计算字段
func AddFields(fields ...Field) Stage {
	return addFieldsStage{fields: fields}
}

func (s addFieldsStage) apply(b *builder) {
	if b.countOnly {
		return
	}
	for _, f := range s.fields {
		b.addSelect(fmt.Sprintf("%s AS %s", f.Expr, f.Name), f.Vars...)
	}
}

type projectStage struct{ fields []string }

// Project 主表字段白名单
func Project(fields ...string) Stage {
	return projectStage{fields: fields}
}

func (s projectStage) apply(b *builder) {
	if b.countOnly {
		return
	}
	for _, f := range s.fields {
		b.addSelect(b.base + "." + f)
	}
}

// ---------- Sort / Sample / Window ----------

// SortKey 排序键
type SortKey struct {
	Column string
	Desc   bool
}

// Asc 升序键
func Asc(column string) SortKey { return SortKey{Column: column} }

// Desc 降序键
func Desc(column string) SortKey { return SortKey{Column: column, Desc: true} }

type sortStage struct{ keys []SortKey }

// Sort 按键排序
func Sort(keys ...SortKey) Stage {
	return sortStage{keys: keys}
}

func (s sortStage) apply(b *builder) {
	if b.countOnly {
		return
	}
	for _, k := range s.keys {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		b.tx = b.tx.Order(k.Column + " " + dir)
	}
}

type sampleStage struct{ n int }

// Sample 均匀随机取 n 条
func Sample(n int) Stage {
	return sampleStage{n: n}
}

func (s sampleStage) apply(b *builder) {
	if b.countOnly {
		return
	}
	b.tx = b.tx.Order("RANDOM()").Limit(s.n)
}

type limitStage struct{ n int }

// Limit 最多返回 n 条
func Limit(n int) Stage { return limitStage{n: n} }

func (s limitStage) apply(b *builder) {
	if b.countOnly {
		return
	}
	b.tx = b.tx.Limit(s.n)
}

type skipStage struct{ n int }

// Skip 跳过前 n 条
func Skip(n int) Stage { return skipStage{n: n} }

func (s skipStage) apply(b *builder) {
	if b.countOnly {
		return
	}
	b.tx = b.tx.Offset(s.n)
}

// ---------- Group ----------

type groupStage struct {
	by   []string
	aggs []Field
}

// Group 分组聚合，投影为分组列加聚合字段
func Group(by []string, aggs ...Field) Stage {
	return groupStage{by: by, aggs: aggs}
}

func (s groupStage) apply(b *builder) {
	b.grouped = true
	b.tx = b.tx.Group(strings.Join(s.by, ", "))
	b.selects = b.selects[:0]
	b.vars = b.vars[:0]
	for _, col := range s.by {
		b.addSelect(col)
	}
	for _, f := range s.aggs {
		b.addSelect(fmt.Sprintf("%s AS %s", f.Expr, f.Name), f.Vars...)
	}
}
