package codec

// Body templates. {{slot}} marks a value, [[token]] a locale display string,
// ((a|b)) a literal that parses in either spelling and renders as the first.
// Whitespace between literal tokens is matched loosely on parse.

const (
	descriptionHeading  = "# Description"
	linkedIssuesHeading = "# Linked issues"
)

const pldTemplate = `# [[document_description]]

<table>
    <tr>
        <th>[[title]]</th>
        <td>{{title}}</td>
    </tr>
    <tr>
        <th>[[subtitle]]</th>
        <td>{{subtitle}}</td>
    </tr>
    <tr>
        <th>[[description]]</th>
        <td>{{description}}</td>
    </tr>
    <tr>
        <th>[[locale]]</th>
        <td>{{locale}}</td>
    </tr>
    <tr>
        <th>[[authors]]</th>
        <td>{{authors}}</td>
    </tr>
    <tr>
        <th>[[updated_date]]</th>
        <td>{{updated_date}}</td>
    </tr>
    <tr>
        <th>[[model_version]]</th>
        <td>{{model_version}}</td>
    </tr>
</table>

# [[revision_table]]

<table>
    <thead>
        <tr>
            <th>[[date]]</th>
            <th>[[version]]</th>
            <th>[[authors]]</th>
            <th>[[sections]]</th>
            <th>[[comment]]</th>
        </tr>
    </thead>
    <tbody>{{versions}}
    </tbody>
</table>`

const versionRowTemplate = `
        <tr>
            <td>{{date}}</td>
            <td>{{version}}</td>
            <td>{{authors}}</td>
            <td>{{sections}}</td>
            <td>{{comment}}</td>
        </tr>`

const containerTemplate = descriptionHeading + `

{{description}}`

const userStoryTemplate = `<table>
    <tr>
        <td colspan="2" align="center" width="2000x">{{name}}</td>
    </tr>
    <tr>
        <td>[[as_user]]:<br>{{user}}</td>
        <td>[[user_want]]:<br>{{action}}</td>
    </tr>
    <tr>
        <td colspan="2">[[description]]: {{description}}</td>
    </tr>
    <tr>
        <td colspan="2">[[definition_of_done]]:<br>
            <ul>{{definitions_of_done}}
            </ul>
        </td>
    </tr>
    <tr>
        <td colspan="2">[[assignation]]: {{assignments}}</td>
    </tr>
    <tr>
        <td>[[estimated_duration]]:</td>
        <td>
            {{estimated_duration}} [[man_days]] ({{estimated_hours}} [[hours]])
        </td>
    </tr>
    <tr>
        <td>
            [[status]]:
        </td>
        <td>
            {{status}}
        </td>
    </tr>
    <tr>
        <td colspan="2">[[due_date]]: {{due_date}}((</td>|<br>))
    </tr>
    <tr>
        <td colspan="2">[[end_date]]: {{end_date}}((</td>|<br>))
    </tr>{{comments}}
</table>`

const inlineCommentTemplate = `
    <tr>
        <td colspan="2">[[comments]]: {{comments_text}}<br>
        </td>
    </tr>`

const listCommentTemplate = `
    <tr>
        <td colspan="2">[[comments]]:<br>
            <ul>{{comments_items}}
            </ul>
        </td>
    </tr>`

// Older bodies carry a comments row with no text for a string comment.
const emptyCommentTemplate = `
    <tr>
        <td colspan="2">[[comments]]:<br>
        </td>
    </tr>`

const listItemIndent = "\n                "

// Slot value patterns.
const (
	cellPattern   = `[^<]*`
	lazyPattern   = `.*?`
	numberPattern = `[+-]?\d+(?:\.\d+)?`
	intPattern    = `\d+`
)
